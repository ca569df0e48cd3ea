package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cricstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultMatchesDir, cfg.MatchesDir)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.InDelta(t, 0.2, cfg.Train.TestFraction, 1e-9)
	assert.Equal(t, uint64(42), cfg.Train.Seed)
	assert.Equal(t, DefaultFetchURL, cfg.Fetch.URL)
	assert.NotEmpty(t, cfg.DB)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
matches_dir: /srv/cricsheet/ipl
workers: 3
log:
  level: debug
train:
  test_fraction: 0.25
  seed: 7
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cricsheet/ipl", cfg.MatchesDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.InDelta(t, 0.25, cfg.Train.TestFraction, 1e-9)
	assert.Equal(t, uint64(7), cfg.Train.Seed)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "workers: 3\n")
	t.Setenv("CRICSTATS_WORKERS", "9")
	t.Setenv("CRICSTATS_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Workers)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRICSTATS_WORKERS", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 1, "")
	flags.String("matches", "", "")
	flags.Bool("log-json", false, "")
	require.NoError(t, flags.Parse([]string{"--workers=2", "--matches=/tmp/m", "--log-json"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/tmp/m", cfg.MatchesDir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 1, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, defaultWorkers(), cfg.Workers)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeConfig(t, "workers: [1, 2\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	valid := Config{
		MatchesDir: "m",
		Workers:    1,
		Log:        LogConfig{Level: "info", Format: "text"},
		Train:      TrainConfig{TestFraction: 0.2},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Workers = 0
	require.ErrorIs(t, bad.Validate(), errWorkers)

	bad = valid
	bad.Log.Level = "trace"
	require.ErrorIs(t, bad.Validate(), errLogLevel)

	bad = valid
	bad.Log.Format = "xml"
	require.ErrorIs(t, bad.Validate(), errLogFormat)

	bad = valid
	bad.Train.TestFraction = 1
	require.ErrorIs(t, bad.Validate(), errTestFraction)

	bad = valid
	bad.MatchesDir = ""
	bad.Workers = -1
	err := bad.Validate()
	require.ErrorIs(t, err, errMatchesDir)
	require.ErrorIs(t, err, errWorkers)
}
