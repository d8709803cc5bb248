package playoffs

import (
	"sort"
	"time"

	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/schedule"
)

// GamesPerSeries is the length of a best-of-three, all of which are
// scheduled up front. A third game made unnecessary by a 2-0 series is
// cancelled afterwards by whoever records results.
const GamesPerSeries = 3

// Game is one game of a playoff series.
type Game struct {
	Series     int
	GameNumber int
	Home       string
	Away       string
	DateTime   time.Time
	Venue      *string
	Status     league.Status
}

// Sequence creates every series' three games and places them on the
// calendar. All game 1s come first, then all game 2s, then all game 3s,
// each group in series order. The higher seed hosts games 1 and 3.
func Sequence(series []Series, cal schedule.Calendar) ([]Game, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, league.Invalidf("no playoff series to schedule")
	}

	games := make([]Game, 0, len(series)*GamesPerSeries)
	for _, s := range series {
		for n := 1; n <= GamesPerSeries; n++ {
			home, away := s.HigherSeed, s.LowerSeed
			if n == 2 {
				home, away = away, home
			}
			games = append(games, Game{
				Series:     s.Number,
				GameNumber: n,
				Home:       home,
				Away:       away,
			})
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].GameNumber != games[j].GameNumber {
			return games[i].GameNumber < games[j].GameNumber
		}
		return games[i].Series < games[j].Series
	})

	slots, err := schedule.GenerateSlots(cal, len(games))
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].DateTime = slots[i].DateTime()
		games[i].Venue = slots[i].Venue
		games[i].Status = league.StatusScheduled
	}
	return games, nil
}
