package features

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ModelName is the stored name of the next-match runs regression.
const ModelName = "next_match_runs"

// ErrInsufficientData is returned when there are too few rows to hold out a
// test split and still fit.
var ErrInsufficientData = errors.New("not enough feature rows to train")

// minRows keeps at least two training rows after the test split.
const minRows = 3

// ridge is added to the standardized Gram diagonal so constant or collinear
// features still factorize.
const ridge = 1e-6

// Split shuffles 0..n-1 with a PCG source seeded by seed and holds out
// ceil(n*testFraction) indices for testing.
func Split(n int, testFraction float64, seed uint64) (train, test []int) {
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * testFraction))
	nTest = min(max(nTest, 1), n)
	return perm[nTest:], perm[:nTest]
}

// Train fits the regression on a seeded train split of rows and reports the
// mean absolute error on the held-out rows.
func Train(rows []model.FeatureRow, testFraction float64, seed uint64) (*model.Regression, error) {
	if len(rows) < minRows {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(rows), minRows)
	}
	trainIdx, testIdx := Split(len(rows), testFraction, seed)
	if len(trainIdx) < minRows-1 {
		return nil, fmt.Errorf("%w: test fraction %.2f leaves %d training rows", ErrInsufficientData, testFraction, len(trainIdx))
	}

	m, err := Fit(pick(rows, trainIdx))
	if err != nil {
		return nil, err
	}
	m.MAE = MAE(m, pick(rows, testIdx))
	m.TrainRows, m.TestRows = len(trainIdx), len(testIdx)
	m.TrainedAt = time.Now().UTC().Truncate(time.Second)
	return m, nil
}

// Fit solves ordinary least squares with an intercept over every row.
// Features are standardized before solving and the coefficients are mapped
// back to the raw scale.
func Fit(rows []model.FeatureRow) (*model.Regression, error) {
	n, p := len(rows), len(model.FeatureNames)
	if n == 0 {
		return nil, ErrInsufficientData
	}

	cols := make([][]float64, p)
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	y := make([]float64, n)
	for i := range rows {
		for j, v := range rows[i].Vector() {
			cols[j][i] = v
		}
		y[i] = rows[i].NextMatchRuns
	}

	means := make([]float64, p)
	scales := make([]float64, p)
	z := mat.NewDense(n, p, nil)
	for j, col := range cols {
		mean, sd := stat.MeanStdDev(col, nil)
		means[j] = mean
		if !(sd > 0) {
			// constant column (or a single row): contributes nothing
			continue
		}
		scales[j] = sd
		for i, v := range col {
			z.Set(i, j, (v-mean)/sd)
		}
	}

	yMean := stat.Mean(y, nil)
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-yMean)
	}

	var gram mat.SymDense
	gram.SymOuterK(1, z.T())
	for j := 0; j < p; j++ {
		gram.SetSym(j, j, gram.At(j, j)+ridge)
	}
	var zty mat.VecDense
	zty.MulVec(z.T(), yc)

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return nil, errors.New("factorize normal equations: matrix is not positive definite")
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &zty); err != nil {
		return nil, fmt.Errorf("solve normal equations: %w", err)
	}

	m := &model.Regression{
		Name:         ModelName,
		Features:     append([]string(nil), model.FeatureNames...),
		Intercept:    yMean,
		Coefficients: make([]float64, p),
	}
	for j := 0; j < p; j++ {
		if scales[j] == 0 {
			continue
		}
		m.Coefficients[j] = beta.AtVec(j) / scales[j]
		m.Intercept -= m.Coefficients[j] * means[j]
	}
	return m, nil
}

// MAE is the mean absolute prediction error of m over rows; 0 for no rows.
func MAE(m *model.Regression, rows []model.FeatureRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for i := range rows {
		sum += math.Abs(m.Predict(rows[i].Vector()) - rows[i].NextMatchRuns)
	}
	return sum / float64(len(rows))
}

func pick(rows []model.FeatureRow, idx []int) []model.FeatureRow {
	out := make([]model.FeatureRow, len(idx))
	for i, k := range idx {
		out[i] = rows[k]
	}
	return out
}
