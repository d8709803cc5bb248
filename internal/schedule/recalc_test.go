package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/strategy"
)

func intPtr(n int) *int { return &n }

func finished(label, home, away string, at time.Time, hs, as int) league.Game {
	return league.Game{
		Matchup:   league.Matchup{Home: home, Away: away, Round: 1, Leg: league.LegFirst},
		Label:     label,
		DateTime:  at,
		Status:    league.StatusFinished,
		HomeScore: intPtr(hs),
		AwayScore: intPtr(as),
	}
}

func TestRecalculateAfterTeamJoins(t *testing.T) {
	cal := testCalendar()
	played := finished("Game 1", "T1", "T2", time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC), 80, 70)
	existing := []league.Game{
		played,
		{
			Matchup:  league.Matchup{Home: "T2", Away: "T1", Round: 2, Leg: league.LegSecond},
			Label:    "Game 2",
			DateTime: time.Date(2026, 1, 10, 20, 15, 0, 0, time.UTC),
			Status:   league.StatusScheduled,
		},
	}

	r, err := Recalculate(existing, []string{"T1", "T2", "T3"}, strategy.DoubleRoundRobinStrategy{}, cal)
	if err != nil {
		t.Fatalf("Recalculate() error: %v", err)
	}

	t.Run("finished game is preserved unchanged", func(t *testing.T) {
		if len(r.Preserved) != 1 || !reflect.DeepEqual(r.Preserved[0], played) {
			t.Errorf("preserved = %+v, want the finished game", r.Preserved)
		}
	})

	t.Run("unfinished games are discarded", func(t *testing.T) {
		if len(r.Discarded) != 1 || r.Discarded[0].Label != "Game 2" {
			t.Errorf("discarded = %+v, want Game 2", r.Discarded)
		}
	})

	t.Run("remaining pairings scheduled once", func(t *testing.T) {
		want := map[orientation]bool{
			{"T2", "T1"}: true,
			{"T1", "T3"}: true,
			{"T3", "T1"}: true,
			{"T2", "T3"}: true,
			{"T3", "T2"}: true,
		}
		got := make(map[orientation]int)
		for _, g := range r.New {
			got[orientation{g.Home, g.Away}]++
		}
		if len(r.New) != len(want) {
			t.Errorf("new games = %d, want %d", len(r.New), len(want))
		}
		for o := range want {
			if got[o] != 1 {
				t.Errorf("%s hosting %s scheduled %d times, want 1", o.home, o.away, got[o])
			}
		}
		if got[orientation{"T1", "T2"}] != 0 {
			t.Error("already played T1 vs T2 was rescheduled")
		}
	})

	t.Run("new games start the day after the last finished game", func(t *testing.T) {
		first := r.New[0].DateTime
		want := time.Date(2026, 1, 11, 18, 0, 0, 0, time.UTC)
		if !first.Equal(want) {
			t.Errorf("first new game at %v, want %v", first, want)
		}
	})

	t.Run("labels continue after existing games", func(t *testing.T) {
		if r.New[0].Label != "Game 3" {
			t.Errorf("first new label = %q, want Game 3", r.New[0].Label)
		}
	})

	t.Run("games lists preserved then new", func(t *testing.T) {
		games := r.Games()
		if len(games) != 6 || games[0].Label != "Game 1" {
			t.Errorf("Games() = %d games starting %q", len(games), games[0].Label)
		}
	})
}

func TestRecalculateNothingPlayed(t *testing.T) {
	cal := testCalendar()
	r, err := Recalculate(nil, []string{"A", "B", "C", "D"}, strategy.DoubleRoundRobinStrategy{}, cal)
	if err != nil {
		t.Fatalf("Recalculate() error: %v", err)
	}
	fresh, _ := Schedule(cal, strategy.DoubleRoundRobinStrategy{}, []string{"A", "B", "C", "D"})
	if !reflect.DeepEqual(r.New, fresh.Games) {
		t.Error("recalculating an unplayed season should match a fresh schedule")
	}
}

func TestRecalculateAfterTeamLeaves(t *testing.T) {
	cal := testCalendar()
	existing := []league.Game{
		finished("Game 1", "A", "B", time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC), 60, 58),
		finished("Game 2", "C", "D", time.Date(2026, 1, 10, 20, 15, 0, 0, time.UTC), 71, 77),
	}

	r, err := Recalculate(existing, []string{"A", "B", "C"}, strategy.DoubleRoundRobinStrategy{}, cal)
	if err != nil {
		t.Fatalf("Recalculate() error: %v", err)
	}

	if len(r.Preserved) != 2 {
		t.Errorf("preserved = %d, want 2 (results against departed teams stay)", len(r.Preserved))
	}
	for _, g := range r.New {
		if g.Home == "D" || g.Away == "D" {
			t.Errorf("%s schedules departed team D", g.Label)
		}
	}
	// 3 teams double round-robin is 6 games, A hosting B already played.
	if len(r.New) != 5 {
		t.Errorf("new games = %d, want 5", len(r.New))
	}
}

func TestRecalculateInvalid(t *testing.T) {
	_, err := Recalculate(nil, []string{"A"}, strategy.DoubleRoundRobinStrategy{}, testCalendar())
	if !errors.Is(err, league.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
