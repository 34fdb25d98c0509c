// Package config loads run defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Defaults holds the environment-supplied defaults for a run. Command-line
// flags override every field.
type Defaults struct {
	FirstFrame  int     `env:"MOTIONIO_FIRST_FRAME" envDefault:"0"`
	LastFrame   int     `env:"MOTIONIO_LAST_FRAME" envDefault:"1000"`
	FrameRate   float64 `env:"MOTIONIO_FPS" envDefault:"30"`
	Precision   int     `env:"MOTIONIO_PRECISION" envDefault:"4"`
	Order       string  `env:"MOTIONIO_ORDER" envDefault:"velocity"`
	Scheme      string  `env:"MOTIONIO_SCHEME" envDefault:"forward"`
	Parallel    bool    `env:"MOTIONIO_PARALLEL" envDefault:"false"`
	Workers     int     `env:"MOTIONIO_WORKERS" envDefault:"0"`
	Output      string  `env:"MOTIONIO_OUTPUT" envDefault:"output.csv"`
	Axis        string  `env:"MOTIONIO_AXIS" envDefault:"y"`
	LogLevel    string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string  `env:"LOG_FORMAT" envDefault:"text"`
	MetricsFile string  `env:"MOTIONIO_METRICS_FILE"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment, then parses Defaults from it. Missing dotenv files
// are ignored.
func Load(paths ...string) (Defaults, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Defaults{}, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return ParseEnv()
}

// ParseEnv parses Defaults from the current environment.
func ParseEnv() (Defaults, error) {
	var d Defaults
	if err := env.Parse(&d); err != nil {
		return Defaults{}, fmt.Errorf("parse env: %w", err)
	}
	return d, nil
}
