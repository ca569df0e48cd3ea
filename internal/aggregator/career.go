package aggregator

import (
	"strconv"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// formWeights weight the most recent innings first.
var formWeights = [...]float64{1.5, 1.3, 1.1, 0.9, 0.7}

// recentWindow is the number of innings feeding recent_* and form_index.
const recentWindow = len(formWeights)

// Batting computes player's batting career over a date-sorted corpus.
func Batting(matches []model.Match, player string) model.BattingCareer {
	c := BattingCareer(Participation(matches, player, model.DisciplineBatting))
	c.Player = player
	return c
}

// BattingCareer derives a batting career from chronologically ordered
// innings results. Non-batting results are ignored.
func BattingCareer(innings []model.InningsResult) model.BattingCareer {
	var (
		c       model.BattingCareer
		total   model.BattingStats
		scores  []int
		matches = make(map[string]struct{})
	)
	for _, r := range innings {
		if r.Kind != model.DisciplineBatting || !r.Participated() {
			continue
		}
		matches[r.MatchID] = struct{}{}
		total = total.Add(r.Batting)
		scores = append(scores, r.Batting.Runs)
		if !r.Batting.Out {
			c.NotOuts++
		}
		c.HighestScore = max(c.HighestScore, r.Batting.Runs)
	}

	c.Matches = len(matches)
	c.Innings = len(scores)
	c.Outs = c.Innings - c.NotOuts
	c.Runs = total.Runs
	c.BallsFaced = total.BallsFaced
	c.Fours = total.Fours
	c.Sixes = total.Sixes
	c.DotBalls = total.DotBalls
	c.BoundaryBalls = total.BoundaryBalls

	runs, balls := float64(total.Runs), float64(total.BallsFaced)
	boundaries := float64(total.Fours + total.Sixes)

	// With no dismissals the average falls back to the raw run total.
	switch {
	case c.Outs > 0:
		c.Average = round2(runs / float64(c.Outs))
	case total.Runs > 0:
		c.Average = round2(runs)
	}
	c.StrikeRate = round2(pct(runs, balls))
	c.DotBallPercentage = round2(pct(float64(total.DotBalls), balls))
	c.BoundaryPercentage = round2(pct(float64(total.BoundaryBalls), balls))
	c.BallsPerBoundary = round2(ratio(balls, boundaries))
	c.BoundaryToDotRatio = round2(ratio(boundaries, float64(total.DotBalls)))
	c.BallsPerDismissal = round2(ratio(balls, float64(c.Outs)))

	thirties := 0
	for _, s := range scores {
		switch {
		case s >= 100:
			c.Hundreds++
		case s >= 50:
			c.Fifties++
		}
		if s >= 30 {
			thirties++
		}
	}
	c.Consistency = round2(pct(float64(thirties), float64(c.Innings)))

	c.RecentScores = recent(scores)
	c.FormIndex = formIndex(c.RecentScores)
	return c
}

// Bowling computes player's bowling career over a date-sorted corpus. ok is
// false when player never bowled a legal ball.
func Bowling(matches []model.Match, player string) (model.BowlingCareer, bool) {
	c, ok := BowlingCareer(Participation(matches, player, model.DisciplineBowling))
	c.Player = player
	return c, ok
}

// BowlingCareer derives a bowling career from chronologically ordered
// innings results. Non-bowling results are ignored. ok is false when the
// results hold no legal ball, in which case the career carries no data.
func BowlingCareer(innings []model.InningsResult) (model.BowlingCareer, bool) {
	var (
		c       model.BowlingCareer
		total   model.BowlingStats
		wickets []int
		matches = make(map[string]struct{})
	)
	for _, r := range innings {
		if r.Kind != model.DisciplineBowling || !r.Participated() {
			continue
		}
		matches[r.MatchID] = struct{}{}
		total = total.Add(r.Bowling)
		wickets = append(wickets, r.Bowling.Wickets)
	}
	if total.Balls == 0 {
		return model.BowlingCareer{}, false
	}

	c.Matches = len(matches)
	c.Innings = len(wickets)
	c.Balls = total.Balls
	c.RunsConceded = total.RunsConceded
	c.Wickets = total.Wickets
	c.Extras = total.Extras
	c.Wides = total.Wides
	c.NoBalls = total.NoBalls

	overs := Overs(total.Balls)
	c.Overs = roundTo(overs, 1)

	runs, balls, wkts := float64(total.RunsConceded), float64(total.Balls), float64(total.Wickets)
	c.Average = round2(ratio(runs, wkts))
	// Economy divides by overs in cricket notation, not decimal overs.
	c.Economy = round2(ratio(runs, overs))
	c.StrikeRate = round2(ratio(balls, wkts))
	c.DotBallPercentage = round2(pct(float64(total.DotBalls), balls))
	c.BoundaryPercentage = round2(pct(float64(total.BoundaryBalls), balls))
	c.ExtrasPercentage = round2(pct(float64(total.Extras), float64(total.Balls+total.Wides+total.NoBalls)))
	c.BallsPerWicket = round2(ratio(balls, wkts))

	for _, w := range wickets {
		if w >= 3 {
			c.ThreeWicketHauls++
		}
		if w >= 5 {
			c.FiveWicketHauls++
		}
	}

	c.RecentWickets = recent(wickets)
	c.FormIndex = formIndex(c.RecentWickets)
	return c, true
}

// Overs converts legal balls to cricket notation: complete overs plus the
// remaining balls as tenths (23 balls -> 3.5).
func Overs(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/10
}

// recent returns a copy of the last recentWindow values, oldest first.
// The result is never nil so it encodes as [] rather than null.
func recent(values []int) []int {
	start := max(len(values)-recentWindow, 0)
	out := make([]int, len(values)-start)
	copy(out, values[start:])
	return out
}

// formIndex weights recent values most-recent-first and divides by the
// full window size, even when fewer values exist.
func formIndex(recent []int) float64 {
	if len(recent) == 0 {
		return 0
	}
	var sum float64
	for i := range recent {
		sum += float64(recent[len(recent)-1-i]) * formWeights[i]
	}
	return round2(sum / float64(recentWindow))
}

// ratio returns num/den, or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// pct returns num/den as a percentage, or 0 when den is zero.
func pct(num, den float64) float64 {
	return ratio(num, den) * 100
}

// round2 rounds to two decimals, ties to even on the exact binary value.
func round2(v float64) float64 {
	return roundTo(v, 2)
}

// roundTo goes through decimal formatting instead of scaling by a power of
// ten, which adds its own error and rounds ties away from zero.
func roundTo(v float64, prec int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', prec, 64), 64)
	if err != nil {
		return v
	}
	return r
}
