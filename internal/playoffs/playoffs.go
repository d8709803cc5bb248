// Package playoffs turns final standings into a best-of-three bracket.
package playoffs

import (
	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/standings"
)

// Qualification splits the standings at the playoff line.
type Qualification struct {
	Qualified  []standings.Row
	Eliminated []standings.Row
}

// Qualify drops the bottom two teams of an even-sized league or the bottom
// one of an odd-sized league, then one more if that leaves an odd number.
// rows must already be ranked.
func Qualify(rows []standings.Row, totalTeams int) (Qualification, error) {
	cut := 1
	if totalTeams%2 == 0 {
		cut = 2
	}
	n := min(totalTeams-cut, len(rows))
	if n%2 == 1 {
		n--
	}
	if n < 2 {
		return Qualification{}, league.Invalidf("cannot start playoffs: %d of %d teams would qualify", max(n, 0), totalTeams)
	}
	return Qualification{
		Qualified:  rows[:n],
		Eliminated: rows[n:],
	}, nil
}

// OnRoster keeps the rows of teams still in the league, in rank order.
// Departed teams keep their results in the table but cannot be seeded.
func OnRoster(rows []standings.Row, roster []string) []standings.Row {
	current := make(map[string]bool, len(roster))
	for _, t := range roster {
		current[t] = true
	}
	var kept []standings.Row
	for _, r := range rows {
		if current[r.Team] {
			kept = append(kept, r)
		}
	}
	return kept
}

// Series is one best-of-three matchup.
type Series struct {
	Number     int
	HigherSeed string
	LowerSeed  string
}

// Bracket pairs seeds from the outside in: best against worst, second best
// against second worst, and so on.
func Bracket(seeds []string) ([]Series, error) {
	if len(seeds) < 2 || len(seeds)%2 == 1 {
		return nil, league.Invalidf("a bracket needs an even number of at least 2 teams, got %d", len(seeds))
	}
	series := make([]Series, 0, len(seeds)/2)
	for i, j := 0, len(seeds)-1; i < j; i, j = i+1, j-1 {
		series = append(series, Series{
			Number:     i + 1,
			HigherSeed: seeds[i],
			LowerSeed:  seeds[j],
		})
	}
	return series, nil
}
