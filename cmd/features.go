package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

const trainingDataFile = "training_data.csv"

var featuresPrint bool

// featuresCmd turns batting_stats.json into the regression training table.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Build training_data.csv from batting_stats.json",
	Long: `Derive one feature row per player with at least one innings from the
batting_stats.json written by 'cricstats stats'. The target column,
next_match_runs, is the player's most recent innings score.`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().BoolVar(&featuresPrint, "print", false, "also print the rows as a table")
}

func runFeatures(_ *cobra.Command, _ []string) error {
	rows, err := buildTrainingData()
	if err != nil {
		return err
	}
	if featuresPrint {
		report.PrintFeatureTable(os.Stdout, rows)
	}
	return nil
}

// buildTrainingData writes training_data.csv and returns its rows.
func buildTrainingData() ([]model.FeatureRow, error) {
	careers, err := loadBattingJSON(cfg.OutputPath(battingStatsFile))
	if err != nil {
		return nil, err
	}
	rows := features.BuildRows(careers)

	path := cfg.OutputPath(trainingDataFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if err := features.WriteCSV(f, rows); err != nil {
		f.Close()
		return nil, fmt.Errorf("write training data: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stdout, "Training data saved to %s (%d rows)\n", path, len(rows))
	return rows, nil
}

// loadTrainingData reads training_data.csv, building it first when absent.
func loadTrainingData() ([]model.FeatureRow, error) {
	path := cfg.OutputPath(trainingDataFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "%s not found, building it from %s\n", trainingDataFile, battingStatsFile)
		return buildTrainingData()
	}
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()

	rows, err := features.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// loadBattingJSON reads a batting_stats.json export back into careers.
func loadBattingJSON(path string) ([]model.BattingCareer, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s not found: run 'cricstats stats' first", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read batting stats: %w", err)
	}
	var byPlayer map[string]model.BattingCareer
	if err := json.Unmarshal(raw, &byPlayer); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	careers := make([]model.BattingCareer, 0, len(byPlayer))
	for player, c := range byPlayer {
		c.Player = player
		careers = append(careers, c)
	}
	return careers, nil
}
