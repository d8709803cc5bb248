package schedule

import (
	"fmt"
	"time"

	"github.com/derekprior/league/internal/league"
)

// Calendar describes when games can be played.
type Calendar struct {
	Start     time.Time
	Weekdays  []time.Weekday
	TimeSlots []string // "18:00", "20:15", etc. Filled in the order given.
	Venue     *string
}

// Slot is an available (date, time) at the calendar's venue.
type Slot struct {
	Date  time.Time
	Time  string // always "HH:MM"
	Venue *string

	clock clock
}

// DateTime returns the slot's date with its time of day applied, in UTC.
func (s Slot) DateTime() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), s.clock.hour, s.clock.minute, 0, 0, time.UTC)
}

type clock struct {
	hour, minute int
}

func parseClock(s string) (clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return clock{}, fmt.Errorf("invalid time slot %q: want HH:MM", s)
	}
	return clock{t.Hour(), t.Minute()}, nil
}

// String returns the zero-padded "HH:MM" form.
func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// NormalizeTime returns the canonical "HH:MM" form of a time slot, so "9:00"
// and "09:00" compare equal.
func NormalizeTime(s string) (string, error) {
	ck, err := parseClock(s)
	if err != nil {
		return "", league.Invalidf("%v", err)
	}
	return ck.String(), nil
}

// Validate reports configuration that could never yield a slot.
func (c Calendar) Validate() error {
	_, err := c.clocks()
	return err
}

func (c Calendar) clocks() ([]clock, error) {
	if c.Start.IsZero() {
		return nil, league.Invalidf("start date is required")
	}
	if len(c.Weekdays) == 0 {
		return nil, league.Invalidf("at least one playing weekday is required")
	}
	days := make(map[time.Weekday]bool)
	for _, d := range c.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return nil, league.Invalidf("invalid weekday %d", d)
		}
		if days[d] {
			return nil, league.Invalidf("weekday %s listed twice", d)
		}
		days[d] = true
	}

	if len(c.TimeSlots) == 0 {
		return nil, league.Invalidf("at least one time slot is required")
	}
	seen := make(map[clock]bool)
	clocks := make([]clock, 0, len(c.TimeSlots))
	for _, ts := range c.TimeSlots {
		ck, err := parseClock(ts)
		if err != nil {
			return nil, league.Invalidf("%v", err)
		}
		if seen[ck] {
			return nil, league.Invalidf("time slot %s listed twice", ck)
		}
		seen[ck] = true
		clocks = append(clocks, ck)
	}
	return clocks, nil
}

// permits reports whether games may be played on d.
func (c Calendar) permits(d time.Time) bool {
	for _, w := range c.Weekdays {
		if d.Weekday() == w {
			return true
		}
	}
	return false
}

// GenerateSlots walks the calendar forward from the start date and returns
// the first n slots. Every slot of a permitted day is used, in order, before
// moving to the next permitted day.
func GenerateSlots(cal Calendar, n int) ([]Slot, error) {
	clocks, err := cal.clocks()
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, n)
	d := dateOf(cal.Start)
	next := 0 // index into the day's time slots
	for len(slots) < n {
		if !cal.permits(d) || next == len(clocks) {
			d = d.AddDate(0, 0, 1)
			next = 0
			continue
		}
		slots = append(slots, Slot{
			Date:  d,
			Time:  clocks[next].String(),
			Venue: cal.Venue,
			clock: clocks[next],
		})
		next++
	}
	return slots, nil
}

// dateOf truncates t to midnight UTC of its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
