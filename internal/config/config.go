// Package config loads cricstats settings from flags, environment, a YAML
// config file and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// Default settings.
const (
	DefaultMatchesDir   = "ipl_data/matches"
	DefaultDataDir      = "data"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
	DefaultFetchURL     = "https://cricsheet.org/downloads/ipl_json.zip"
)

// Config is the top-level configuration struct for cricstats.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	MatchesDir string      `mapstructure:"matches_dir"`
	DataDir    string      `mapstructure:"data_dir"`
	DB         string      `mapstructure:"db"`
	Workers    int         `mapstructure:"workers"`
	Log        LogConfig   `mapstructure:"log"`
	Train      TrainConfig `mapstructure:"train"`
	Fetch      FetchConfig `mapstructure:"fetch"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TrainConfig holds regression training knobs.
type TrainConfig struct {
	TestFraction float64 `mapstructure:"test_fraction"`
	Seed         uint64  `mapstructure:"seed"`
}

// FetchConfig holds the corpus download source.
type FetchConfig struct {
	URL string `mapstructure:"url"`
}

var (
	errWorkers      = errors.New("workers must be at least 1")
	errLogLevel     = errors.New("log.level must be one of debug, info, warn, error")
	errLogFormat    = errors.New("log.format must be text or json")
	errTestFraction = errors.New("train.test_fraction must be between 0 and 1 (exclusive)")
	errMatchesDir   = errors.New("matches_dir must not be empty")
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	var errs []error
	if c.MatchesDir == "" {
		errs = append(errs, errMatchesDir)
	}
	if c.Workers < 1 {
		errs = append(errs, errWorkers)
	}
	if _, ok := logLevels[c.Log.Level]; !ok {
		errs = append(errs, errLogLevel)
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		errs = append(errs, errLogFormat)
	}
	if c.Train.TestFraction <= 0 || c.Train.TestFraction >= 1 {
		errs = append(errs, errTestFraction)
	}
	return errors.Join(errs...)
}

// Level returns the slog level for Log.Level, defaulting to info.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[c.Log.Level]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// OutputPath joins name onto the data directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// defaultDB is ~/.cricstats/stats.db, or ./stats.db without a home dir.
func defaultDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stats.db"
	}
	return filepath.Join(home, ".cricstats", "stats.db")
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// String renders the effective settings for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("matches_dir=%s data_dir=%s db=%s workers=%d log=%s/%s",
		c.MatchesDir, c.DataDir, c.DB, c.Workers, c.Log.Level, c.Log.Format)
}
