package model

import "testing"

func TestInningsResultRecord(t *testing.T) {
	bat := InningsResult{
		MatchID: "1359475", MatchDate: "2023-04-01", InningsIndex: 1, Kind: DisciplineBatting,
		Batting: BattingStats{Runs: 82, BallsFaced: 49, Out: true},
	}
	rec := bat.Record("V Kohli")
	if rec.Player != "V Kohli" || rec.Runs != 82 || rec.Balls != 49 || !rec.Out || rec.Wickets != 0 {
		t.Errorf("batting record: %+v", rec)
	}
	if rec.InningsIndex != 1 || rec.MatchDate != "2023-04-01" {
		t.Errorf("batting record position: %+v", rec)
	}

	bowl := InningsResult{
		MatchID: "1359475", Kind: DisciplineBowling,
		Bowling: BowlingStats{Balls: 24, RunsConceded: 31, Wickets: 2},
	}
	rec = bowl.Record("JJ Bumrah")
	if rec.Runs != 31 || rec.Balls != 24 || rec.Wickets != 2 || rec.Out {
		t.Errorf("bowling record: %+v", rec)
	}
}

func TestRegressionPredict(t *testing.T) {
	r := Regression{Intercept: 2, Coefficients: []float64{1, 0.5}}
	if got := r.Predict([]float64{3, 4}); got != 7 {
		t.Errorf("Predict: got %v, want 7", got)
	}
	// Inputs beyond the coefficient count are ignored.
	if got := r.Predict([]float64{3, 4, 100}); got != 7 {
		t.Errorf("Predict with extra input: got %v, want 7", got)
	}
}

func TestFeatureRowVectorOrder(t *testing.T) {
	r := FeatureRow{Average: 1, StrikeRate: 2, BallsPerBoundary: 3, BoundaryToDotRatio: 4,
		BallsPerDismissal: 5, FormIndex: 6, Consistency: 7, RecentMean: 8, RecentStd: 9}
	v := r.Vector()
	if len(v) != len(FeatureNames) {
		t.Fatalf("vector has %d values for %d names", len(v), len(FeatureNames))
	}
	for i, x := range v {
		if x != float64(i+1) {
			t.Errorf("%s: got %v at position %d", FeatureNames[i], x, i)
		}
	}
}
