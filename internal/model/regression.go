package model

import "time"

// Regression is a fitted linear model over FeatureNames.
type Regression struct {
	Name         string
	TrainedAt    time.Time
	Features     []string
	Intercept    float64
	Coefficients []float64
	MAE          float64
	TrainRows    int
	TestRows     int
}

// Predict returns intercept + coefficients·x. Extra or missing inputs are
// ignored beyond the shorter of the two slices.
func (r *Regression) Predict(x []float64) float64 {
	y := r.Intercept
	for i := 0; i < len(x) && i < len(r.Coefficients); i++ {
		y += r.Coefficients[i] * x[i]
	}
	return y
}
