package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/storage"
)

var summaryTop int

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about the stored run:
match count, date range, venues, player counts, the leading run scorers
and wicket takers, and when the runs model was last trained.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "rows per leaderboard")
}

func runSummary(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetDBOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalMatches == 0 {
		fmt.Fprintln(os.Stdout, "No run stored yet. Run 'cricstats stats' to compute one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %s\n", humanize.Comma(int64(ov.TotalMatches)))
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n", ov.EarliestMatch, ov.LatestMatch)
	fmt.Fprintf(os.Stdout, "  Venues         : %d\n", ov.UniqueVenues)
	fmt.Fprintf(os.Stdout, "  Batters        : %s\n", humanize.Comma(int64(ov.Batters)))
	fmt.Fprintf(os.Stdout, "  Bowlers        : %s\n", humanize.Comma(int64(ov.Bowlers)))
	fmt.Fprintf(os.Stdout, "  Innings rows   : %s\n", humanize.Comma(int64(ov.InningsRows)))
	if ov.ModelTrainedAt != "" {
		fmt.Fprintf(os.Stdout, "  Model trained  : %s\n", ov.ModelTrainedAt)
	}

	bat, err := db.TopRunScorers(summaryTop)
	if err != nil {
		return fmt.Errorf("get top run scorers: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Most Runs ---\n\n")
	printLeaders(bat, "RUNS", "SR")

	bowl, err := db.TopWicketTakers(summaryTop)
	if err != nil {
		return fmt.Errorf("get top wicket takers: %w", err)
	}
	if len(bowl) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Most Wickets ---\n\n")
		printLeaders(bowl, "WKTS", "ECON")
	}
	return nil
}

func printLeaders(rows []storage.LeaderRow, valueHeader, rateHeader string) {
	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("PLAYER", "MATCHES", valueHeader, rateHeader)
	for _, r := range rows {
		t.Append(
			r.Player,
			fmt.Sprintf("%d", r.Matches),
			humanize.Comma(int64(r.Value)),
			fmt.Sprintf("%.2f", r.Rate),
		)
	}
	t.Render()
}
