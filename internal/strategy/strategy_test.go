package strategy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/derekprior/league/internal/league"
)

func teamNames(n int) []string {
	teams := make([]string, n)
	for i := range teams {
		teams[i] = fmt.Sprintf("T%d", i+1)
	}
	return teams
}

type pair struct{ a, b string }

func unordered(m league.Matchup) pair {
	if m.Home > m.Away {
		return pair{m.Away, m.Home}
	}
	return pair{m.Home, m.Away}
}

func TestRoundRobin(t *testing.T) {
	for n := 2; n <= 12; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := teamNames(n)
			rounds, err := RoundRobin(teams)
			if err != nil {
				t.Fatalf("RoundRobin() error: %v", err)
			}

			wantRounds := n - 1
			if n%2 == 1 {
				wantRounds = n
			}
			if len(rounds) != wantRounds {
				t.Errorf("rounds = %d, want %d", len(rounds), wantRounds)
			}

			counts := make(map[pair]int)
			for i, round := range rounds {
				playing := make(map[string]bool)
				for _, m := range round {
					if m.Round != i+1 {
						t.Errorf("matchup %s vs %s has round %d, want %d", m.Home, m.Away, m.Round, i+1)
					}
					if m.Leg != league.LegFirst {
						t.Errorf("matchup leg = %q, want first", m.Leg)
					}
					if playing[m.Home] || playing[m.Away] {
						t.Errorf("round %d: team plays twice", i+1)
					}
					playing[m.Home] = true
					playing[m.Away] = true
					counts[unordered(m)]++
				}
			}

			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					p := unordered(league.Matchup{Home: teams[i], Away: teams[j]})
					if counts[p] != 1 {
						t.Errorf("%s vs %s = %d games, want 1", p.a, p.b, counts[p])
					}
				}
			}
		})
	}
}

func TestRoundRobinOddCount(t *testing.T) {
	rounds, err := RoundRobin(teamNames(5))
	if err != nil {
		t.Fatalf("RoundRobin() error: %v", err)
	}
	if len(rounds) != 5 {
		t.Fatalf("rounds = %d, want 5", len(rounds))
	}

	idle := make(map[string]int)
	for i, round := range rounds {
		if len(round) != 2 {
			t.Errorf("round %d has %d matchups, want 2", i+1, len(round))
		}
		playing := make(map[string]bool)
		for _, m := range round {
			playing[m.Home] = true
			playing[m.Away] = true
		}
		for _, team := range teamNames(5) {
			if !playing[team] {
				idle[team]++
			}
		}
	}

	t.Run("each team sits out exactly once", func(t *testing.T) {
		for _, team := range teamNames(5) {
			if idle[team] != 1 {
				t.Errorf("%s idle %d rounds, want 1", team, idle[team])
			}
		}
	})
}

func TestRoundRobinDeterministic(t *testing.T) {
	a, _ := RoundRobin(teamNames(7))
	b, _ := RoundRobin(teamNames(7))
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Error("same input produced different rounds")
	}
}

func TestRoundRobinInvalid(t *testing.T) {
	tests := map[string][]string{
		"no teams":       nil,
		"one team":       {"T1"},
		"duplicate team": {"T1", "T2", "T1"},
	}
	for name, teams := range tests {
		t.Run(name, func(t *testing.T) {
			rounds, err := RoundRobin(teams)
			if !errors.Is(err, league.ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
			if rounds != nil {
				t.Errorf("got %d rounds alongside error", len(rounds))
			}
		})
	}
}

func TestDoubleRoundRobin(t *testing.T) {
	for n := 2; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := teamNames(n)
			rounds, err := DoubleRoundRobin(teams)
			if err != nil {
				t.Fatalf("DoubleRoundRobin() error: %v", err)
			}
			first, _ := RoundRobin(teams)

			if len(rounds) != 2*len(first) {
				t.Errorf("rounds = %d, want %d", len(rounds), 2*len(first))
			}

			games := Flatten(rounds)
			if len(games) != n*(n-1) {
				t.Errorf("games = %d, want %d", len(games), n*(n-1))
			}

			type ordered struct{ home, away string }
			seen := make(map[ordered]league.Leg)
			for i, round := range rounds {
				wantLeg := league.LegFirst
				if i >= len(first) {
					wantLeg = league.LegSecond
				}
				for _, m := range round {
					if m.Round != i+1 {
						t.Errorf("round number = %d, want %d", m.Round, i+1)
					}
					if m.Leg != wantLeg {
						t.Errorf("round %d leg = %q, want %q", i+1, m.Leg, wantLeg)
					}
					k := ordered{m.Home, m.Away}
					if _, dup := seen[k]; dup {
						t.Errorf("%s hosts %s twice", m.Home, m.Away)
					}
					seen[k] = m.Leg
				}
			}

			for k, leg := range seen {
				rev, ok := seen[ordered{k.away, k.home}]
				if !ok {
					t.Errorf("%s never hosts %s", k.away, k.home)
					continue
				}
				if rev == leg {
					t.Errorf("%s/%s: both orientations in %s leg", k.home, k.away, leg)
				}
			}
		})
	}
}

func TestDoubleRoundRobinMirrorsFirstLeg(t *testing.T) {
	rounds, _ := DoubleRoundRobin(teamNames(4))
	half := len(rounds) / 2
	for i := 0; i < half; i++ {
		for j, m := range rounds[i] {
			mirror := rounds[i+half][j]
			if mirror.Home != m.Away || mirror.Away != m.Home {
				t.Errorf("round %d game %d: second leg %s vs %s does not mirror %s vs %s",
					i+1, j+1, mirror.Home, mirror.Away, m.Home, m.Away)
			}
		}
	}
}

func TestGet(t *testing.T) {
	t.Run("known strategies", func(t *testing.T) {
		for _, name := range []string{"", DoubleRoundRobinName, SingleRoundRobinName} {
			if _, err := Get(name); err != nil {
				t.Errorf("Get(%q) error: %v", name, err)
			}
		}
	})

	t.Run("single round robin plays each pair once", func(t *testing.T) {
		s, _ := Get(SingleRoundRobinName)
		rounds, err := s.GenerateRounds(teamNames(6))
		if err != nil {
			t.Fatalf("GenerateRounds() error: %v", err)
		}
		if got := len(Flatten(rounds)); got != 15 {
			t.Errorf("games = %d, want 15", got)
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := Get("swiss")
		if !errors.Is(err, league.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}
