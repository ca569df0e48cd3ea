package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var predictCmd = &cobra.Command{
	Use:   "predict <name>",
	Short: "Predict a player's runs in their next match",
	Long: `Predict next-match runs for one player from their training_data.csv row.
A model is trained and stored first if none exists yet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

func runPredict(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	return predictPlayer(db, strings.Join(args, " "))
}

// predictPlayer prints the prediction for name. A player without a feature
// row prints a note and is not an error.
func predictPlayer(db *storage.DB, name string) error {
	m, err := db.LoadModel(features.ModelName)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if m == nil {
		fmt.Fprintln(os.Stderr, "Model not found. Training a new model...")
		if m, err = trainAndStore(db); err != nil {
			return err
		}
	}

	rows, err := loadTrainingData()
	if err != nil {
		return err
	}
	row, ok := features.Find(rows, name)
	if !ok {
		fmt.Fprintf(os.Stdout, "No data available for player: %s\n", name)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Predicted runs for %s: %.2f\n", name, m.Predict(row.Vector()))
	return nil
}
