package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a player's stored careers and innings history",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	return showStored(db, strings.Join(args, " "))
}

// showStored prints what the store holds for name. Unknown players print a
// note rather than failing.
func showStored(db *storage.DB, name string) error {
	bat, err := db.GetBattingCareer(name)
	if err != nil {
		return fmt.Errorf("query batting career: %w", err)
	}
	if bat == nil {
		fmt.Fprintf(os.Stderr, "No stored careers for %q\n", name)
		return nil
	}
	bowl, err := db.GetBowlingCareer(name)
	if err != nil {
		return fmt.Errorf("query bowling career: %w", err)
	}
	report.PrintPlayerProfile(os.Stdout, *bat, bowl)

	var history []model.InningsRecord
	for _, kind := range []model.Discipline{model.DisciplineBatting, model.DisciplineBowling} {
		rows, err := db.GetInningsHistory(name, kind)
		if err != nil {
			return fmt.Errorf("query %s history: %w", kind, err)
		}
		history = append(history, rows...)
	}
	printHistory(history)
	return nil
}
