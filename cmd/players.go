package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/parser"
	"github.com/pable/go-cricket-metrics/internal/report"
)

const playersFile = "players.json"

// playersCmd writes the sorted union of every team sheet.
var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Extract every player name into players.json",
	Long: `Read the team sheets of every parseable match file (dated or not) and write
the sorted, de-duplicated player names to players.json in the data directory.`,
	Args: cobra.NoArgs,
	RunE: runPlayers,
}

func runPlayers(_ *cobra.Command, _ []string) error {
	players, err := parser.ExtractPlayers(cfg.MatchesDir, logger)
	if err != nil {
		return fmt.Errorf("extract players: %w", err)
	}
	path := cfg.OutputPath(playersFile)
	if err := report.WriteJSONFile(path, players); err != nil {
		return fmt.Errorf("write players: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Saved %d players to %s\n", len(players), path)
	return nil
}
