package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
)

var (
	listBowling bool
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored batting (or bowling) careers",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listBowling, "bowling", false, "list bowling careers, ordered by wickets")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 25, "maximum rows to print (0 = all)")
}

func runList(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if listBowling {
		careers, err := db.ListBowlingCareers()
		if err != nil {
			return fmt.Errorf("list bowling careers: %w", err)
		}
		if len(careers) == 0 {
			fmt.Fprintln(os.Stdout, "No bowling careers stored yet. Run 'cricstats stats' first.")
			return nil
		}
		if listLimit > 0 && len(careers) > listLimit {
			careers = careers[:listLimit]
		}
		report.PrintBowlingTable(os.Stdout, careers, "")
		return nil
	}

	careers, err := db.ListBattingCareers()
	if err != nil {
		return fmt.Errorf("list batting careers: %w", err)
	}
	if len(careers) == 0 {
		fmt.Fprintln(os.Stdout, "No careers stored yet. Run 'cricstats stats' first.")
		return nil
	}
	if listLimit > 0 && len(careers) > listLimit {
		careers = careers[:listLimit]
	}
	report.PrintBattingTable(os.Stdout, careers, "")
	return nil
}
