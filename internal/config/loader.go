package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".cricstats"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for cricstats settings.
const envPrefix = "CRICSTATS"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"matches":   "matches_dir",
	"data":      "data_dir",
	"db":        "db",
	"workers":   "workers",
	"log-level": "log.level",
	"log-json":  "log.format",

	"test-fraction": "train.test_fraction",
	"seed":          "train.seed",
	"url":           "fetch.url",
}

// LoadConfig loads configuration from flags, env vars, file and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used. flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	if err := bindFlags(viperCfg, flags); err != nil {
		return nil, err
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// bindFlags overrides config keys with flags the user actually set.
func bindFlags(viperCfg *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if f.Name == "log-json" {
			if f.Value.String() == "true" {
				viperCfg.Set(key, "json")
			}
			return
		}
		bindErr = viperCfg.BindPFlag(key, f)
	})
	if bindErr != nil {
		return fmt.Errorf("bind flags: %w", bindErr)
	}
	return nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("matches_dir", DefaultMatchesDir)
	viperCfg.SetDefault("data_dir", DefaultDataDir)
	viperCfg.SetDefault("db", defaultDB())
	viperCfg.SetDefault("workers", defaultWorkers())

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.format", DefaultLogFormat)

	viperCfg.SetDefault("train.test_fraction", DefaultTestFraction)
	viperCfg.SetDefault("train.seed", DefaultSeed)

	viperCfg.SetDefault("fetch.url", DefaultFetchURL)
}
