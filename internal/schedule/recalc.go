package schedule

import (
	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/strategy"
)

// Recalculation is the outcome of regenerating a season after its roster
// changed.
type Recalculation struct {
	Preserved []league.Game // finished games, unchanged
	Discarded []league.Game // scheduled or cancelled games that were dropped
	New       []league.Game // freshly scheduled remaining games
}

// Games returns the preserved games followed by the new ones.
func (r *Recalculation) Games() []league.Game {
	games := make([]league.Game, 0, len(r.Preserved)+len(r.New))
	games = append(games, r.Preserved...)
	return append(games, r.New...)
}

type orientation struct {
	home, away string
}

// Recalculate rebuilds the unplayed part of a regular season for the current
// roster. Finished games are kept as they are. Everything else is thrown
// away and the strategy's full set of matchups is regenerated, minus any
// matchup whose exact home/away orientation has already been played. The
// remaining matchups are placed starting the day after the latest finished
// game, or at the calendar's start when nothing has been played.
func Recalculate(existing []league.Game, roster []string, strat strategy.Strategy, cal Calendar) (*Recalculation, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	rounds, err := strat.GenerateRounds(roster)
	if err != nil {
		return nil, err
	}

	r := &Recalculation{}
	played := make(map[orientation]bool)
	nextLabel := 1
	for _, g := range existing {
		if n, ok := league.LabelNumber(g.Label); ok && n >= nextLabel {
			nextLabel = n + 1
		}
		if g.Finished() {
			r.Preserved = append(r.Preserved, g)
			played[orientation{g.Home, g.Away}] = true
		} else {
			r.Discarded = append(r.Discarded, g)
		}
	}

	var remaining []league.Matchup
	for _, m := range strategy.Flatten(rounds) {
		if played[orientation{m.Home, m.Away}] {
			continue
		}
		remaining = append(remaining, m)
	}

	if len(r.Preserved) > 0 {
		cal.Start = dateOf(LastDate(r.Preserved)).AddDate(0, 0, 1)
	}
	r.New, err = Assign(cal, remaining, nextLabel)
	if err != nil {
		return nil, err
	}
	return r, nil
}
