package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/derekprior/league/internal/config"
	"github.com/derekprior/league/internal/excel"
	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/schedule"
	"github.com/derekprior/league/internal/strategy"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Game    string // label of the offending game, if any
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks it against the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	games, err := excel.ReadGames(path)
	if err != nil {
		return nil, fmt.Errorf("reading games: %w", err)
	}
	return Check(cfg, games)
}

// Check validates games against the config.
func Check(cfg *config.Config, games []league.Game) ([]Violation, error) {
	strat, err := cfg.MatchupStrategy()
	if err != nil {
		return nil, err
	}
	rounds, err := strat.GenerateRounds(cfg.Teams)
	if err != nil {
		return nil, err
	}

	var violations []Violation

	// Hard constraints
	violations = append(violations, checkCalendar(cfg, games)...)
	violations = append(violations, checkSlotConflicts(games)...)
	violations = append(violations, checkRoster(cfg, games)...)
	violations = append(violations, checkPairings(strategy.Flatten(rounds), games)...)

	// Soft constraints
	violations = append(violations, checkOneGamePerDay(games)...)
	violations = append(violations, checkResults(games)...)
	violations = append(violations, checkRoundOrder(games)...)

	return violations, nil
}

func active(g league.Game) bool {
	return g.Status != league.StatusCancelled
}

func checkCalendar(cfg *config.Config, games []league.Game) []Violation {
	cal := cfg.Calendar()
	days := make(map[time.Weekday]bool)
	for _, d := range cal.Weekdays {
		days[d] = true
	}
	slots := make(map[string]bool)
	for _, s := range cal.TimeSlots {
		if n, err := schedule.NormalizeTime(s); err == nil {
			slots[n] = true
		}
	}

	var violations []Violation
	for _, g := range games {
		if !active(g) {
			continue
		}
		if !days[g.DateTime.Weekday()] {
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    "error",
				Message: fmt.Sprintf("%s is on a %s, not a playing day", g.Label, g.DateTime.Weekday()),
			})
		}
		if t := g.DateTime.Format("15:04"); !slots[t] {
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    "error",
				Message: fmt.Sprintf("%s starts at %s, not a configured time slot", g.Label, t),
			})
		}
	}
	return violations
}

func checkSlotConflicts(games []league.Game) []Violation {
	bySlot := make(map[time.Time][]string)
	for _, g := range games {
		if active(g) {
			bySlot[g.DateTime] = append(bySlot[g.DateTime], g.Label)
		}
	}

	var violations []Violation
	for at, labels := range bySlot {
		if len(labels) > 1 {
			violations = append(violations, Violation{
				Game:    labels[1],
				Type:    "error",
				Message: fmt.Sprintf("%d games at %s: %v", len(labels), at.Format("01/02 15:04"), labels),
			})
		}
	}
	sortViolations(violations)
	return violations
}

func checkOneGamePerDay(games []league.Game) []Violation {
	type teamDay struct {
		team string
		date string
	}
	counts := make(map[teamDay][]string)
	for _, g := range games {
		if !active(g) {
			continue
		}
		d := g.DateTime.Format("2006-01-02")
		counts[teamDay{g.Home, d}] = append(counts[teamDay{g.Home, d}], g.Label)
		counts[teamDay{g.Away, d}] = append(counts[teamDay{g.Away, d}], g.Label)
	}

	var violations []Violation
	for td, labels := range counts {
		if len(labels) > 1 {
			violations = append(violations, Violation{
				Game:    labels[1],
				Type:    "warning",
				Message: fmt.Sprintf("%s plays %d games on %s", td.team, len(labels), td.date),
			})
		}
	}
	sortViolations(violations)
	return violations
}

// checkRoster flags teams that are not in the config. Finished games
// against a team that has left are history and only warned about.
func checkRoster(cfg *config.Config, games []league.Game) []Violation {
	roster := make(map[string]bool)
	for _, t := range cfg.Teams {
		roster[t] = true
	}

	var violations []Violation
	for _, g := range games {
		if !active(g) {
			continue
		}
		for _, team := range []string{g.Home, g.Away} {
			if roster[team] {
				continue
			}
			typ := "error"
			if g.Finished() {
				typ = "warning"
			}
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    typ,
				Message: fmt.Sprintf("%s involves %s, who is not on the roster", g.Label, team),
			})
		}
	}
	return violations
}

// checkPairings compares the games against the matchups the strategy
// requires. Orientation matters: A hosting B and B hosting A are different
// requirements.
func checkPairings(required []league.Matchup, games []league.Game) []Violation {
	type orientation struct{ home, away string }
	want := make(map[orientation]int)
	var order []orientation
	for _, m := range required {
		o := orientation{m.Home, m.Away}
		if want[o] == 0 {
			order = append(order, o)
		}
		want[o]++
	}
	got := make(map[orientation]int)
	for _, g := range games {
		if active(g) {
			got[orientation{g.Home, g.Away}]++
		}
	}

	var violations []Violation
	for _, o := range order {
		switch n := got[o]; {
		case n < want[o]:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s never hosts %s", o.home, o.away),
			})
		case n > want[o]:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s hosts %s %d times (want %d)", o.home, o.away, n, want[o]),
			})
		}
	}
	return violations
}

func checkResults(games []league.Game) []Violation {
	var violations []Violation
	for _, g := range games {
		if !g.Finished() {
			continue
		}
		if g.HomeScore == nil || g.AwayScore == nil {
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    "warning",
				Message: fmt.Sprintf("%s is finished but has no score; it is left out of the standings", g.Label),
			})
			continue
		}
		if *g.HomeScore == *g.AwayScore {
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    "warning",
				Message: fmt.Sprintf("%s ended tied %d-%d; standings count it as a win for %s", g.Label, *g.HomeScore, *g.AwayScore, g.Away),
			})
		}
	}
	return violations
}

// checkRoundOrder warns when an unplayed game of a later round comes before
// one of an earlier round.
func checkRoundOrder(games []league.Game) []Violation {
	var pending []league.Game
	for _, g := range games {
		if g.Status == league.StatusScheduled && g.Round > 0 {
			pending = append(pending, g)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DateTime.Before(pending[j].DateTime)
	})

	var violations []Violation
	maxRound := 0
	maxLabel := ""
	for _, g := range pending {
		if g.Round < maxRound {
			violations = append(violations, Violation{
				Game:    g.Label,
				Type:    "warning",
				Message: fmt.Sprintf("%s (round %d) is scheduled after %s (round %d)", g.Label, g.Round, maxLabel, maxRound),
			})
			continue
		}
		maxRound, maxLabel = g.Round, g.Label
	}
	return violations
}

func sortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		return vs[i].Message < vs[j].Message
	})
}
