package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/config"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var (
	configPath string

	// cfg and logger are populated by the root PersistentPreRunE.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cricstats",
	Short: "Cricket ball-by-ball career metrics tool",
	Long: `Compute batting and bowling career statistics from cricsheet-style
ball-by-ball JSON match files, store them, and model next-match runs.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: .cricstats.yaml in CWD or $HOME)")
	pf.String("db", "", "path to SQLite database (default ~/.cricstats/stats.db)")
	pf.String("matches", "", "directory of match JSON files (default "+config.DefaultMatchesDir+")")
	pf.String("data", "", "output directory for JSON/CSV exports (default "+config.DefaultDataDir+")")
	pf.Int("workers", 0, "concurrent player workers (default GOMAXPROCS)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("log-json", false, "emit logs as JSON")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadSettings resolves configuration for the command being run and builds
// the shared logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c
	logger = newLogger(c)
	logger.Debug("config loaded", "settings", c.String())
	return nil
}

func newLogger(c *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore opens the configured database.
func openStore() (*storage.DB, error) {
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
