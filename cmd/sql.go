package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the stats database",
	Long: `Run an arbitrary SQL query against the stats database and print results as a table.

Schema overview:
  matches(id, match_date, venue, teams, innings)
  batting_careers(player, matches, innings, not_outs, outs, runs, average,
    strike_rate, balls_faced, fours, sixes, highest_score, fifties, hundreds,
    consistency, recent_scores, form_index, ...)
  bowling_careers(player, matches, innings, overs, balls, runs_conceded, wickets,
    average, economy, strike_rate, extras, wides, no_balls, three_wicket_hauls,
    five_wicket_hauls, recent_wickets, form_index, ...)
  innings_history(player, discipline, match_id, match_date, innings_index,
    runs, balls, wickets, is_out)
  models(name, trained_at, features, coefficients, intercept, mae, train_rows, test_rows)

Note: discipline is 'batting' or 'bowling'; recent_* columns hold JSON arrays.
Example: cricstats sql "SELECT player, runs FROM batting_careers ORDER BY runs DESC LIMIT 5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
