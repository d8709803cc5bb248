package strategy

import (
	"fmt"

	"github.com/derekprior/league/internal/league"
)

const (
	DoubleRoundRobinName = "double_round_robin"
	SingleRoundRobinName = "single_round_robin"
)

// Strategy generates the rounds of a regular season.
type Strategy interface {
	GenerateRounds(teams []string) ([][]league.Matchup, error)
}

// Get returns a Strategy by name. An empty name selects the double round-robin.
func Get(name string) (Strategy, error) {
	switch name {
	case DoubleRoundRobinName, "":
		return DoubleRoundRobinStrategy{}, nil
	case SingleRoundRobinName:
		return SingleRoundRobinStrategy{}, nil
	default:
		return nil, league.Invalidf("unknown strategy: %q", name)
	}
}

// DoubleRoundRobinStrategy plays every pair twice, once at each home court.
type DoubleRoundRobinStrategy struct{}

func (DoubleRoundRobinStrategy) GenerateRounds(teams []string) ([][]league.Matchup, error) {
	return DoubleRoundRobin(teams)
}

// SingleRoundRobinStrategy plays every pair once.
type SingleRoundRobinStrategy struct{}

func (SingleRoundRobinStrategy) GenerateRounds(teams []string) ([][]league.Matchup, error) {
	return RoundRobin(teams)
}

// bye pads an odd team count. It is an index, never a team name, so no
// real team can collide with it.
const bye = -1

// RoundRobin pairs every team with every other team once using the circle
// method. Team 0 stays fixed while the rest rotate one position per round.
// With an odd count one team sits out each round, so there are N rounds of
// (N-1)/2 games instead of N-1 rounds of N/2.
func RoundRobin(teams []string) ([][]league.Matchup, error) {
	if len(teams) < 2 {
		return nil, league.Invalidf("at least 2 teams are required, got %d", len(teams))
	}
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		if seen[t] {
			return nil, league.Invalidf("team %q listed twice", t)
		}
		seen[t] = true
	}

	rotating := make([]int, 0, len(teams))
	for i := 1; i < len(teams); i++ {
		rotating = append(rotating, i)
	}
	if len(teams)%2 == 1 {
		rotating = append(rotating, bye)
	}

	numRounds := len(rotating)
	rounds := make([][]league.Matchup, 0, numRounds)
	for r := 0; r < numRounds; r++ {
		round := r + 1
		var matchups []league.Matchup
		add := func(home, away int) {
			if home == bye || away == bye {
				return
			}
			matchups = append(matchups, league.Matchup{
				Home:  teams[home],
				Away:  teams[away],
				Round: round,
				Leg:   league.LegFirst,
			})
		}

		// Alternate the fixed team's court so it is not always home.
		if r%2 == 0 {
			add(0, rotating[0])
		} else {
			add(rotating[0], 0)
		}
		for i, j := 1, len(rotating)-1; i < j; i, j = i+1, j-1 {
			add(rotating[i], rotating[j])
		}
		rounds = append(rounds, matchups)

		last := rotating[len(rotating)-1]
		copy(rotating[1:], rotating[:len(rotating)-1])
		rotating[0] = last
	}

	return rounds, nil
}

// DoubleRoundRobin returns the first leg followed by a mirrored second leg
// with home and away swapped. Round numbers continue across both legs.
func DoubleRoundRobin(teams []string) ([][]league.Matchup, error) {
	first, err := RoundRobin(teams)
	if err != nil {
		return nil, err
	}

	rounds := make([][]league.Matchup, 0, 2*len(first))
	rounds = append(rounds, first...)
	for _, round := range first {
		second := make([]league.Matchup, len(round))
		for i, m := range round {
			s := m.Swapped()
			s.Round = m.Round + len(first)
			s.Leg = league.LegSecond
			second[i] = s
		}
		rounds = append(rounds, second)
	}
	return rounds, nil
}

// Flatten returns the matchups of all rounds in round order.
func Flatten(rounds [][]league.Matchup) []league.Matchup {
	var matchups []league.Matchup
	for _, round := range rounds {
		matchups = append(matchups, round...)
	}
	return matchups
}

// Describe summarises a strategy's output for display.
func Describe(rounds [][]league.Matchup) string {
	return fmt.Sprintf("%d rounds, %d games", len(rounds), len(Flatten(rounds)))
}
