package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/parser"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var playerHistory bool

// playerCmd computes one player's careers straight from the match files.
var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Compute one player's careers directly from the corpus",
	Long: `Compute batting and bowling careers for a single player from the match
files, without touching the database. The name must match the team sheet
spelling, e.g. "V Kohli". Multiple arguments are joined with spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().BoolVar(&playerHistory, "history", false, "also print every innings")
}

func runPlayer(_ *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	matches, err := parser.LoadCorpus(cfg.MatchesDir, logger)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	run := computePlayer(matches, name)
	if run.Batting.Innings == 0 && run.Bowling == nil {
		fmt.Fprintf(os.Stderr, "No innings found for %q in %d matches\n", name, len(matches))
		return nil
	}

	report.PrintPlayerProfile(os.Stdout, run.Batting, run.Bowling)
	if playerHistory {
		printHistory(run.History)
	}
	return nil
}

// printHistory prints batting then bowling innings, each under its own heading.
func printHistory(history []model.InningsRecord) {
	for _, kind := range []model.Discipline{model.DisciplineBatting, model.DisciplineBowling} {
		var rows []model.InningsRecord
		for _, r := range history {
			if r.Kind == kind {
				rows = append(rows, r)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n--- %s innings ---\n\n", kind)
		report.PrintInningsHistory(os.Stdout, rows)
	}
}
