package schedule

import (
	"time"

	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/strategy"
)

// TeamMetrics holds per-team schedule statistics.
type TeamMetrics struct {
	Games int
	Home  int
	Away  int
	First time.Time // first game
	Last  time.Time // last game
}

// Result is the output of the scheduling process.
type Result struct {
	Rounds      int
	Games       []league.Game
	TeamMetrics map[string]*TeamMetrics
}

// Schedule generates the season's rounds with strat and places every game
// on the calendar. Validation happens before anything is generated, so an
// error never comes with a partial schedule.
func Schedule(cal Calendar, strat strategy.Strategy, teams []string) (*Result, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	rounds, err := strat.GenerateRounds(teams)
	if err != nil {
		return nil, err
	}

	games, err := Assign(cal, strategy.Flatten(rounds), 1)
	if err != nil {
		return nil, err
	}
	return &Result{
		Rounds:      len(rounds),
		Games:       games,
		TeamMetrics: BuildMetrics(teams, games),
	}, nil
}

// Assign places matchups on the calendar in the order given, numbering the
// resulting games from firstLabel.
func Assign(cal Calendar, matchups []league.Matchup, firstLabel int) ([]league.Game, error) {
	slots, err := GenerateSlots(cal, len(matchups))
	if err != nil {
		return nil, err
	}

	games := make([]league.Game, len(matchups))
	for i, m := range matchups {
		games[i] = league.Game{
			Matchup:  m,
			Label:    league.Label(firstLabel + i),
			DateTime: slots[i].DateTime(),
			Venue:    slots[i].Venue,
			Status:   league.StatusScheduled,
		}
	}
	return games, nil
}

// BuildMetrics counts games per team. Teams listed in teams always get an
// entry; teams that only appear in games are added as found.
func BuildMetrics(teams []string, games []league.Game) map[string]*TeamMetrics {
	metrics := make(map[string]*TeamMetrics)
	for _, team := range teams {
		metrics[team] = &TeamMetrics{}
	}

	record := func(team string, at time.Time, home bool) {
		m, ok := metrics[team]
		if !ok {
			m = &TeamMetrics{}
			metrics[team] = m
		}
		m.Games++
		if home {
			m.Home++
		} else {
			m.Away++
		}
		if m.First.IsZero() || at.Before(m.First) {
			m.First = at
		}
		if at.After(m.Last) {
			m.Last = at
		}
	}
	for _, g := range games {
		record(g.Home, g.DateTime, true)
		record(g.Away, g.DateTime, false)
	}
	return metrics
}

// LastDate returns the latest game time, or the zero time for no games.
func LastDate(games []league.Game) time.Time {
	var last time.Time
	for _, g := range games {
		if g.DateTime.After(last) {
			last = g.DateTime
		}
	}
	return last
}
