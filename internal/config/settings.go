package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the CLI's environment overrides.
type Settings struct {
	ConfigPath string     `env:"LEAGUE_CONFIG"`
	LogLevel   slog.Level `env:"LEAGUE_LOG_LEVEL" envDefault:"INFO"`
	LogFormat  string     `env:"LEAGUE_LOG_FORMAT" envDefault:"text"`
}

// LoadSettings reads settings from the environment, after loading dotenv
// files if they exist. Variables already set in the environment win.
func LoadSettings(dotenvFiles ...string) (*Settings, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	s, err := env.ParseAs[Settings]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return nil, fmt.Errorf("LEAGUE_LOG_FORMAT must be text or json, got %q", s.LogFormat)
	}
	return &s, nil
}
