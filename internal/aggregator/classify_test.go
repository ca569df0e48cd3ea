package aggregator

import (
	"testing"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// Names used across aggregator tests.
const (
	striker    = "V Kohli"
	nonStriker = "AB de Villiers"
	bowlerA    = "JJ Bumrah"
	bowlerB    = "YS Chahal"
)

// ball builds a delivery from striker to bowler with the given runs off the bat.
func ball(batter, bowler string, runs int) model.Delivery {
	return model.Delivery{
		Batter: batter,
		Bowler: bowler,
		Runs:   model.Runs{Batter: runs, Total: runs},
	}
}

// extra builds a delivery carrying a single extras entry of the given kind.
func extra(batter, bowler, kind string, batterRuns, extraRuns int) model.Delivery {
	return model.Delivery{
		Batter: batter,
		Bowler: bowler,
		Runs:   model.Runs{Batter: batterRuns, Extras: extraRuns, Total: batterRuns + extraRuns},
		Extras: map[string]int{kind: extraRuns},
	}
}

// wicket attaches a dismissal to d.
func wicket(d model.Delivery, playerOut, kind string) model.Delivery {
	d.Wickets = append(d.Wickets, model.Wicket{PlayerOut: playerOut, Kind: kind})
	return d
}

// ---- Batting classification ----

func TestClassifyBatting_OtherBatterIsZero(t *testing.T) {
	deliveries := []model.Delivery{
		ball(nonStriker, bowlerA, 6),
		ball(nonStriker, bowlerA, 0),
		wicket(ball(nonStriker, bowlerA, 0), striker, "run out"),
		extra(nonStriker, bowlerA, model.ExtraNoBalls, 4, 1),
	}
	for i := range deliveries {
		got := ClassifyBatting(&deliveries[i], striker)
		if got != (model.BattingStats{}) {
			t.Errorf("delivery %d: expected zero outcome for non-striker, got %+v", i, got)
		}
	}
}

func TestClassifyBatting_Boundaries(t *testing.T) {
	cases := []struct {
		runs                           int
		fours, sixes, dots, boundaries int
	}{
		{runs: 0, dots: 1},
		{runs: 1},
		{runs: 2},
		{runs: 3},
		{runs: 4, fours: 1, boundaries: 1},
		{runs: 5},
		{runs: 6, sixes: 1, boundaries: 1},
	}
	for _, tc := range cases {
		d := ball(striker, bowlerA, tc.runs)
		got := ClassifyBatting(&d, striker)
		if got.BallsFaced != 1 || got.Runs != tc.runs {
			t.Errorf("runs=%d: balls=%d runs=%d", tc.runs, got.BallsFaced, got.Runs)
		}
		if got.Fours != tc.fours || got.Sixes != tc.sixes || got.DotBalls != tc.dots || got.BoundaryBalls != tc.boundaries {
			t.Errorf("runs=%d: got fours=%d sixes=%d dots=%d boundaries=%d",
				tc.runs, got.Fours, got.Sixes, got.DotBalls, got.BoundaryBalls)
		}
	}
}

func TestClassifyBatting_WideIsNotABallFaced(t *testing.T) {
	d := extra(striker, bowlerA, model.ExtraWides, 0, 5)
	got := ClassifyBatting(&d, striker)
	if got.BallsFaced != 0 || got.DotBalls != 0 {
		t.Errorf("wide: expected no ball faced and no dot, got %+v", got)
	}

	// A wide amount of zero still marks the delivery as a wide.
	d = extra(striker, bowlerA, model.ExtraWides, 4, 0)
	got = ClassifyBatting(&d, striker)
	if got.BallsFaced != 0 || got.Fours != 0 {
		t.Errorf("zero-amount wide: expected no ball faced, got %+v", got)
	}
	if got.Runs != 4 {
		t.Errorf("zero-amount wide: batter runs still credited, want 4 got %d", got.Runs)
	}
}

func TestClassifyBatting_NoBallCountsAsFaced(t *testing.T) {
	d := extra(striker, bowlerA, model.ExtraNoBalls, 6, 1)
	got := ClassifyBatting(&d, striker)
	if got.BallsFaced != 1 || got.Sixes != 1 || got.Runs != 6 {
		t.Errorf("no-ball six: got %+v", got)
	}
}

func TestClassifyBatting_OutAnyKind(t *testing.T) {
	for _, kind := range []string{"caught", "bowled", "run out", "stumped", "hit wicket"} {
		d := wicket(ball(striker, bowlerA, 0), striker, kind)
		if got := ClassifyBatting(&d, striker); !got.Out {
			t.Errorf("kind %q: expected Out=true", kind)
		}
	}

	// Non-striker run out while striker is on strike: striker not out.
	d := wicket(ball(striker, bowlerA, 1), nonStriker, "run out")
	if got := ClassifyBatting(&d, striker); got.Out {
		t.Error("non-striker dismissal must not mark striker out")
	}
}

// ---- Bowling classification ----

func TestClassifyBowling_OtherBowlerIsZero(t *testing.T) {
	d := wicket(ball(striker, bowlerB, 4), striker, "bowled")
	if got := ClassifyBowling(&d, bowlerA); got != (model.BowlingStats{}) {
		t.Errorf("expected zero outcome for other bowler, got %+v", got)
	}
}

func TestClassifyBowling_WideAndNoBall(t *testing.T) {
	wide := extra(striker, bowlerA, model.ExtraWides, 0, 2)
	got := ClassifyBowling(&wide, bowlerA)
	want := model.BowlingStats{RunsConceded: 2, Extras: 1, Wides: 1}
	if got != want {
		t.Errorf("wide: want %+v, got %+v", want, got)
	}

	nb := extra(striker, bowlerA, model.ExtraNoBalls, 4, 1)
	got = ClassifyBowling(&nb, bowlerA)
	want = model.BowlingStats{RunsConceded: 5, Extras: 1, NoBalls: 1}
	if got != want {
		t.Errorf("no-ball: want %+v, got %+v", want, got)
	}
}

func TestClassifyBowling_ByesNotConceded(t *testing.T) {
	for _, kind := range []string{model.ExtraByes, model.ExtraLegByes} {
		d := extra(striker, bowlerA, kind, 0, 4)
		got := ClassifyBowling(&d, bowlerA)
		want := model.BowlingStats{Balls: 1, DotBalls: 1, Extras: 1}
		if got != want {
			t.Errorf("%s: want %+v, got %+v", kind, want, got)
		}
	}
}

func TestClassifyBowling_EmptyExtrasStillCounts(t *testing.T) {
	d := ball(striker, bowlerA, 1)
	d.Extras = map[string]int{}
	got := ClassifyBowling(&d, bowlerA)
	if got.Extras != 1 || got.Wides != 0 || got.NoBalls != 0 || got.Balls != 1 {
		t.Errorf("empty extras entry: got %+v", got)
	}
}

func TestClassifyBowling_LegalBallBoundaries(t *testing.T) {
	for runs, wantBoundary := range map[int]int{0: 0, 1: 0, 4: 1, 5: 0, 6: 1} {
		d := ball(striker, bowlerA, runs)
		got := ClassifyBowling(&d, bowlerA)
		if got.BoundaryBalls != wantBoundary {
			t.Errorf("runs=%d: boundary=%d want %d", runs, got.BoundaryBalls, wantBoundary)
		}
		wantDot := 0
		if runs == 0 {
			wantDot = 1
		}
		if got.DotBalls != wantDot {
			t.Errorf("runs=%d: dot=%d want %d", runs, got.DotBalls, wantDot)
		}
	}
}

func TestClassifyBowling_RunOutNotCredited(t *testing.T) {
	d := wicket(ball(striker, bowlerA, 1), striker, model.WicketRunOut)
	if got := ClassifyBowling(&d, bowlerA); got.Wickets != 0 {
		t.Errorf("run out: expected 0 wickets, got %d", got.Wickets)
	}
}

func TestClassifyBowling_MultipleWickets(t *testing.T) {
	d := ball(striker, bowlerA, 0)
	d = wicket(d, striker, "stumped")
	d = wicket(d, nonStriker, "hit wicket")
	d = wicket(d, nonStriker, model.WicketRunOut)
	if got := ClassifyBowling(&d, bowlerA); got.Wickets != 2 {
		t.Errorf("expected 2 bowler-credited wickets, got %d", got.Wickets)
	}
}
