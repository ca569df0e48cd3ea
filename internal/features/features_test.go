package features

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
)

func TestRow_RecentMeanStdAndTarget(t *testing.T) {
	c := model.BattingCareer{
		Player:       "RG Sharma",
		Innings:      7,
		Average:      31.5,
		StrikeRate:   138.2,
		FormIndex:    29.4,
		RecentScores: []int{10, 20, 30},
	}
	r := Row(&c)

	assert.Equal(t, "RG Sharma", r.Player)
	assert.InDelta(t, 20.0, r.RecentMean, 1e-9)
	// population std: sqrt(((10-20)^2 + 0 + (30-20)^2) / 3)
	assert.InDelta(t, 8.16496581, r.RecentStd, 1e-6)
	assert.Equal(t, 30.0, r.NextMatchRuns)
	assert.Equal(t, 31.5, r.Average)
	assert.Equal(t, 29.4, r.FormIndex)
}

func TestRow_SingleRecentScore(t *testing.T) {
	r := Row(&model.BattingCareer{Innings: 1, RecentScores: []int{42}})
	assert.Equal(t, 42.0, r.RecentMean)
	assert.Equal(t, 0.0, r.RecentStd)
	assert.Equal(t, 42.0, r.NextMatchRuns)
}

func TestBuildRows_SkipsNonBattersAndSorts(t *testing.T) {
	rows := BuildRows([]model.BattingCareer{
		{Player: "Z Khan", Innings: 2, RecentScores: []int{1, 2}},
		{Player: "Unused Sub"},
		{Player: "A Mishra", Innings: 1, RecentScores: []int{5}},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "A Mishra", rows[0].Player)
	assert.Equal(t, "Z Khan", rows[1].Player)

	_, ok := Find(rows, "Unused Sub")
	assert.False(t, ok)
	got, ok := Find(rows, "Z Khan")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got.NextMatchRuns)
}

func TestWriteCSV_HeaderAndReadBack(t *testing.T) {
	rows := []model.FeatureRow{
		{Player: "MS Dhoni", Average: 38.79, StrikeRate: 135.2, BallsPerBoundary: 6.1, RecentMean: 18.4, RecentStd: 7.25, NextMatchRuns: 12},
		{Player: "Rashid Khan, Jr", Average: 0, NextMatchRuns: 0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "player,average,strike_rate,balls_per_boundary,boundary_to_dot_ratio,balls_per_dismissal,form_index,consistency,recent_mean,recent_std,next_match_runs", firstLine)
	assert.Contains(t, buf.String(), `"Rashid Khan, Jr"`)

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("player,average\nX,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strike_rate")
}

func TestSplit_SeededAndSized(t *testing.T) {
	train, test := Split(10, 0.2, 42)
	assert.Len(t, test, 2)
	assert.Len(t, train, 8)

	train2, test2 := Split(10, 0.2, 42)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)

	seen := make(map[int]bool)
	for _, i := range append(append([]int(nil), train...), test...) {
		seen[i] = true
	}
	assert.Len(t, seen, 10)

	_, test3 := Split(11, 0.2, 42)
	assert.Len(t, test3, 3, "test size rounds up")
}

// linearRows builds rows whose target is an exact linear function of two
// features; the remaining features are noise.
func linearRows(n int) []model.FeatureRow {
	rng := rand.New(rand.NewPCG(7, 7))
	rows := make([]model.FeatureRow, n)
	for i := range rows {
		r := model.FeatureRow{
			Average:            rng.Float64() * 60,
			StrikeRate:         80 + rng.Float64()*80,
			BallsPerBoundary:   rng.Float64() * 12,
			BoundaryToDotRatio: rng.Float64(),
			BallsPerDismissal:  rng.Float64() * 40,
			FormIndex:          rng.Float64() * 50,
			Consistency:        rng.Float64() * 100,
			RecentMean:         rng.Float64() * 50,
			RecentStd:          rng.Float64() * 20,
		}
		r.NextMatchRuns = 3 + 2*r.Average + 0.5*r.StrikeRate
		rows[i] = r
	}
	return rows
}

func TestFit_RecoversLinearRelation(t *testing.T) {
	m, err := Fit(linearRows(60))
	require.NoError(t, err)

	assert.Equal(t, model.FeatureNames, m.Features)
	assert.InDelta(t, 3.0, m.Intercept, 1e-3)
	assert.InDelta(t, 2.0, m.Coefficients[0], 1e-4)
	assert.InDelta(t, 0.5, m.Coefficients[1], 1e-4)
	for j := 2; j < len(m.Coefficients); j++ {
		assert.InDelta(t, 0.0, m.Coefficients[j], 1e-4, "feature %s", m.Features[j])
	}
}

func TestFit_ConstantFeaturesAreZeroed(t *testing.T) {
	rows := []model.FeatureRow{
		{Average: 10, NextMatchRuns: 25},
		{Average: 20, NextMatchRuns: 45},
		{Average: 30, NextMatchRuns: 65},
	}
	m, err := Fit(rows)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, m.Coefficients[0], 1e-3)
	assert.InDelta(t, 5.0, m.Intercept, 1e-2)
	assert.Equal(t, 0.0, m.Coefficients[1])
}

func TestTrain_ReportsHeldOutError(t *testing.T) {
	m, err := Train(linearRows(50), 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, ModelName, m.Name)
	assert.Equal(t, 40, m.TrainRows)
	assert.Equal(t, 10, m.TestRows)
	assert.InDelta(t, 0.0, m.MAE, 1e-3)
	assert.False(t, m.TrainedAt.IsZero())

	again, err := Train(linearRows(50), 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, m.Coefficients, again.Coefficients)
}

func TestTrain_InsufficientData(t *testing.T) {
	_, err := Train(linearRows(2), 0.2, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestMAE(t *testing.T) {
	m := &model.Regression{Intercept: 10, Coefficients: []float64{1}}
	rows := []model.FeatureRow{
		{Average: 5, NextMatchRuns: 15}, // exact
		{Average: 0, NextMatchRuns: 14}, // off by 4
	}
	assert.Equal(t, 2.0, MAE(m, rows))
	assert.Equal(t, 0.0, MAE(m, nil))
}
