// Package league holds the records shared by the scheduling packages.
package league

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidConfig marks input that can never produce a schedule, such as
// fewer than two teams or a calendar with no playing days.
var ErrInvalidConfig = errors.New("invalid configuration")

// Invalidf returns an error wrapping ErrInvalidConfig.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Leg marks which half of a double round-robin a matchup belongs to.
type Leg string

const (
	LegFirst  Leg = "first"
	LegSecond Leg = "second"
)

// Status is the lifecycle state of a game record.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts the values written to the workbook. Empty means scheduled.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusScheduled:
		return StatusScheduled, nil
	case StatusFinished, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Matchup is one pairing of a round.
type Matchup struct {
	Home  string
	Away  string
	Round int
	Leg   Leg
}

// Swapped returns the matchup with home and away exchanged.
func (m Matchup) Swapped() Matchup {
	m.Home, m.Away = m.Away, m.Home
	return m
}

// Game is a matchup placed on the calendar. Scores are only set once the
// game is finished.
type Game struct {
	Matchup
	Label     string // "Game 12"
	DateTime  time.Time
	Venue     *string
	Status    Status
	HomeScore *int
	AwayScore *int
}

// Finished reports whether the game has a final result.
func (g Game) Finished() bool {
	return g.Status == StatusFinished
}

// Result converts a finished game into the record standings consume.
// ok is false when the game is not finished or a score is missing.
func (g Game) Result() (FinishedGame, bool) {
	if !g.Finished() || g.HomeScore == nil || g.AwayScore == nil {
		return FinishedGame{}, false
	}
	return FinishedGame{
		Home:      g.Home,
		Away:      g.Away,
		HomeScore: *g.HomeScore,
		AwayScore: *g.AwayScore,
	}, true
}

// FinishedGame is a final result.
type FinishedGame struct {
	Home      string
	Away      string
	HomeScore int
	AwayScore int
}

// Results collects the final results from a list of games, skipping
// anything not finished.
func Results(games []Game) []FinishedGame {
	var results []FinishedGame
	for _, g := range games {
		if r, ok := g.Result(); ok {
			results = append(results, r)
		}
	}
	return results
}

// Label returns the workbook identifier for the nth game.
func Label(n int) string {
	return fmt.Sprintf("Game %d", n)
}

// LabelNumber parses a label produced by Label.
func LabelNumber(label string) (int, bool) {
	digits, ok := strings.CutPrefix(label, "Game ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
