package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/league/internal/excel"
	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/schedule"
	"github.com/derekprior/league/internal/strategy"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// Weekday accepts English day names ("saturday") or three-letter
// abbreviations ("sat"), case-insensitively.
type Weekday time.Weekday

func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	d, ok := parseWeekday(value.Value)
	if !ok {
		return fmt.Errorf("invalid weekday %q", value.Value)
	}
	*w = Weekday(d)
	return nil
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

type Season struct {
	StartDate Date      `yaml:"start_date"`
	Weekdays  []Weekday `yaml:"weekdays"`
	TimeSlots []string  `yaml:"time_slots"`
	Venue     *string   `yaml:"venue"`
}

// Playoffs overrides the season calendar for the playoff phase. Anything
// left unset falls back to the season's value.
type Playoffs struct {
	StartDate *Date     `yaml:"start_date"`
	Weekdays  []Weekday `yaml:"weekdays"`
	TimeSlots []string  `yaml:"time_slots"`
	Venue     *string   `yaml:"venue"`
}

type Config struct {
	League   string   `yaml:"league"`
	Season   Season   `yaml:"season"`
	Teams    []string `yaml:"teams"`
	Strategy string   `yaml:"strategy"`
	Playoffs Playoffs `yaml:"playoffs"`
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Calendar returns the regular-season calendar.
func (c *Config) Calendar() schedule.Calendar {
	return schedule.Calendar{
		Start:     c.Season.StartDate.Time,
		Weekdays:  weekdays(c.Season.Weekdays),
		TimeSlots: c.Season.TimeSlots,
		Venue:     c.Season.Venue,
	}
}

// PlayoffCalendar returns the playoff calendar. Without a configured start
// date the playoffs begin the day after lastRegularGame.
func (c *Config) PlayoffCalendar(lastRegularGame time.Time) schedule.Calendar {
	cal := c.Calendar()
	if c.Playoffs.StartDate != nil {
		cal.Start = c.Playoffs.StartDate.Time
	} else if !lastRegularGame.IsZero() {
		d := lastRegularGame.UTC()
		cal.Start = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, time.UTC)
	}
	if len(c.Playoffs.Weekdays) > 0 {
		cal.Weekdays = weekdays(c.Playoffs.Weekdays)
	}
	if len(c.Playoffs.TimeSlots) > 0 {
		cal.TimeSlots = c.Playoffs.TimeSlots
	}
	if c.Playoffs.Venue != nil {
		cal.Venue = c.Playoffs.Venue
	}
	return cal
}

// MatchupStrategy returns the configured matchup strategy.
func (c *Config) MatchupStrategy() (strategy.Strategy, error) {
	return strategy.Get(c.Strategy)
}

func weekdays(ws []Weekday) []time.Weekday {
	days := make([]time.Weekday, len(ws))
	for i, w := range ws {
		days[i] = time.Weekday(w)
	}
	return days
}

func (c *Config) validate() error {
	if len(c.Teams) < 2 {
		return league.Invalidf("at least 2 teams are required, got %d", len(c.Teams))
	}

	seen := make(map[string]bool)
	for _, team := range c.Teams {
		if strings.TrimSpace(team) == "" {
			return league.Invalidf("team names cannot be blank")
		}
		if seen[team] {
			return league.Invalidf("team %q is listed twice", team)
		}
		seen[team] = true
	}

	if err := excel.CheckTeamNames(c.Teams); err != nil {
		return err
	}

	if err := c.Calendar().Validate(); err != nil {
		return fmt.Errorf("season: %w", err)
	}
	c.Season.TimeSlots = normalizeTimes(c.Season.TimeSlots)

	if _, err := c.MatchupStrategy(); err != nil {
		return err
	}

	if err := c.PlayoffCalendar(c.Season.StartDate.Time).Validate(); err != nil {
		return fmt.Errorf("playoffs: %w", err)
	}
	c.Playoffs.TimeSlots = normalizeTimes(c.Playoffs.TimeSlots)

	return nil
}

// normalizeTimes rewrites already validated time slots as "HH:MM".
func normalizeTimes(ts []string) []string {
	for i, t := range ts {
		if n, err := schedule.NormalizeTime(t); err == nil {
			ts[i] = n
		}
	}
	return ts
}
