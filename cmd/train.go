package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

// trainCmd fits the next-match runs regression.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the next-match runs model and store it",
	Long: `Fit a least-squares linear model of next_match_runs over the nine
training_data.csv features, holding out a seeded random test split, print
the mean absolute error on that split, and store the coefficients.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().Float64("test-fraction", 0, "fraction of rows held out for testing (default 0.2)")
	trainCmd.Flags().Uint64("seed", 0, "shuffle seed for the test split (default 42)")
}

func runTrain(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := trainAndStore(db)
	if err != nil {
		return err
	}
	report.PrintModel(os.Stdout, m)
	return nil
}

// trainAndStore fits the model on training_data.csv and saves it.
func trainAndStore(db *storage.DB) (*model.Regression, error) {
	rows, err := loadTrainingData()
	if err != nil {
		return nil, err
	}
	m, err := features.Train(rows, cfg.Train.TestFraction, cfg.Train.Seed)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Model trained. Mean Absolute Error: %.2f\n", m.MAE)
	if err := db.SaveModel(m); err != nil {
		return nil, err
	}
	logger.Info("model stored", "name", m.Name, "train_rows", m.TrainRows, "test_rows", m.TestRows)
	return m, nil
}
