package aggregator

import "github.com/pable/go-cricket-metrics/internal/model"

// ClassifyBatting returns the batting outcome of d for player. The result is
// the zero value unless player is the striker on d.
func ClassifyBatting(d *model.Delivery, player string) model.BattingStats {
	if d.Batter != player {
		return model.BattingStats{}
	}

	run := d.Runs.Batter
	out := model.BattingStats{Runs: run}

	// Wides are never a ball faced, whatever was run off them.
	if !d.IsWide() {
		out.BallsFaced = 1
		switch run {
		case 4:
			out.Fours = 1
			out.BoundaryBalls = 1
		case 6:
			out.Sixes = 1
			out.BoundaryBalls = 1
		case 0:
			out.DotBalls = 1
		}
	}

	for _, w := range d.Wickets {
		if w.PlayerOut == player {
			out.Out = true
			break
		}
	}
	return out
}

// ClassifyBowling returns the bowling outcome of d for player. The result is
// the zero value unless player bowled d.
func ClassifyBowling(d *model.Delivery, player string) model.BowlingStats {
	if d.Bowler != player {
		return model.BowlingStats{}
	}

	wide, noBall := d.IsWide(), d.IsNoBall()
	batterRuns := d.Runs.Batter

	// Byes and leg-byes are extras but are not charged to the bowler.
	conceded := batterRuns
	if wide || noBall {
		conceded += d.Runs.Extras
	}
	out := model.BowlingStats{RunsConceded: conceded}

	if !wide && !noBall {
		out.Balls = 1
		switch batterRuns {
		case 0:
			out.DotBalls = 1
		case 4, 6:
			out.BoundaryBalls = 1
		}
	}

	if d.HasExtras() {
		out.Extras = 1
		if wide {
			out.Wides = 1
		} else if noBall {
			out.NoBalls = 1
		}
	}

	for _, w := range d.Wickets {
		if w.Kind != model.WicketRunOut {
			out.Wickets++
		}
	}
	return out
}
