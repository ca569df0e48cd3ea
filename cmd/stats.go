package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/batch"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/parser"
	"github.com/pable/go-cricket-metrics/internal/report"
)

const (
	battingStatsFile = "batting_stats.json"
	bowlingStatsFile = "bowling_stats.json"
)

var (
	statsNoStore  bool
	statsProgress bool
)

// statsCmd computes every player's careers over the whole corpus.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute batting and bowling careers for every player",
	Long: `Load every dated match file, compute batting and bowling careers for every
player named on a team sheet, and write them to batting_stats.json and
bowling_stats.json in the data directory. Players who never bowled a legal
ball map to null in bowling_stats.json. The run also replaces the stored
careers and innings history in the database unless --no-store is given.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsNoStore, "no-store", false, "only write JSON files, skip the database")
	statsCmd.Flags().BoolVar(&statsProgress, "progress", true, "print a line per finished player")
}

// playerRun is everything computed for one player in a single pass.
type playerRun struct {
	Batting model.BattingCareer
	Bowling *model.BowlingCareer
	History []model.InningsRecord
}

// computePlayer folds the corpus once per discipline for player.
func computePlayer(matches []model.Match, player string) playerRun {
	batInnings := aggregator.Participation(matches, player, model.DisciplineBatting)
	bowlInnings := aggregator.Participation(matches, player, model.DisciplineBowling)

	run := playerRun{Batting: aggregator.BattingCareer(batInnings)}
	run.Batting.Player = player
	if bowl, ok := aggregator.BowlingCareer(bowlInnings); ok {
		bowl.Player = player
		run.Bowling = &bowl
	}
	for _, r := range batInnings {
		run.History = append(run.History, r.Record(player))
	}
	for _, r := range bowlInnings {
		run.History = append(run.History, r.Record(player))
	}
	return run
}

func runStats(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	matches, err := parser.LoadCorpus(cfg.MatchesDir, logger)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no dated match files found in %s", cfg.MatchesDir)
	}
	// Team sheets from undated files still name players; they get zero records.
	players, err := parser.ExtractPlayers(cfg.MatchesDir, logger)
	if err != nil {
		return fmt.Errorf("extract players: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %s matches, %s players\n",
		humanize.Comma(int64(len(matches))), humanize.Comma(int64(len(players))))

	opts := batch.Options{Workers: cfg.Workers, Logger: logger}
	if statsProgress {
		opts.Progress = os.Stderr
	}
	res, err := batch.Run(cmd.Context(), players, func(_ context.Context, player string) (playerRun, error) {
		return computePlayer(matches, player), nil
	}, opts)
	if err != nil {
		return err
	}

	batting := make(map[string]model.BattingCareer, len(res.Results))
	bowling := make(map[string]*model.BowlingCareer, len(res.Results))
	for player, run := range res.Results {
		batting[player] = run.Batting
		bowling[player] = run.Bowling
	}

	if err := report.WriteJSONFile(cfg.OutputPath(battingStatsFile), batting); err != nil {
		return fmt.Errorf("write batting stats: %w", err)
	}
	if err := report.WriteJSONFile(cfg.OutputPath(bowlingStatsFile), bowling); err != nil {
		return fmt.Errorf("write bowling stats: %w", err)
	}

	if !statsNoStore {
		if err := storeRun(matches, res); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Stats written for %s players to %s (%s)\n",
		humanize.Comma(int64(len(res.Results))), cfg.DataDir, time.Since(start).Round(time.Millisecond))
	if n := len(res.Failures); n > 0 {
		fmt.Fprintf(os.Stderr, "%d players failed:\n", n)
		for _, f := range res.Failures {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", f.Player, f.Err)
		}
	}
	return nil
}

// storeRun replaces the stored run with this one.
func storeRun(matches []model.Match, res *batch.Report[playerRun]) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ResetStats(); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}

	refs := make([]model.MatchRef, len(matches))
	for i := range matches {
		refs[i] = parser.Ref(&matches[i], "")
	}
	if err := db.InsertMatches(refs); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}

	var (
		batting []model.BattingCareer
		bowling []model.BowlingCareer
		history []model.InningsRecord
	)
	for _, player := range res.Players() {
		run := res.Results[player]
		batting = append(batting, run.Batting)
		if run.Bowling != nil {
			bowling = append(bowling, *run.Bowling)
		}
		history = append(history, run.History...)
	}
	if err := db.InsertBattingCareers(batting); err != nil {
		return fmt.Errorf("insert batting careers: %w", err)
	}
	if err := db.InsertBowlingCareers(bowling); err != nil {
		return fmt.Errorf("insert bowling careers: %w", err)
	}
	if err := db.InsertInningsHistory(history); err != nil {
		return fmt.Errorf("insert innings history: %w", err)
	}
	logger.Info("run stored", "db", cfg.DB,
		"batters", len(batting), "bowlers", len(bowling), "innings", humanize.Comma(int64(len(history))))
	return nil
}
