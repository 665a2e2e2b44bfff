package forecast

import (
	"context"
	"math"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
	"gonum.org/v1/gonum/stat"
)

// LinearModel regresses daily totals on a zero-based day index.
// It has no seasonality, holidays or capacity bound.
type LinearModel struct {
	intercept float64
	slope     float64
	n         int
	last      time.Time
	fitted    bool
}

// NewLinearModel returns an unfitted LinearModel
func NewLinearModel() *LinearModel {
	return &LinearModel{}
}

// Fit runs ordinary least squares over the series
func (m *LinearModel) Fit(ctx context.Context, series models.DailySeries) error {
	if err := requireHistory(series); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	m.intercept, m.slope = stat.LinearRegression(xs, series.Totals(), nil, false)
	if math.IsNaN(m.intercept) || math.IsNaN(m.slope) {
		return &ComputationError{Stage: "fit", Cause: errNonFinite}
	}
	m.n = len(series)
	m.last = series.Last()
	m.fitted = true
	return nil
}

// Predict projects the fitted line, clipping negative values to zero
func (m *LinearModel) Predict(horizon int) ([]Prediction, error) {
	if !m.fitted {
		return nil, errNotFitted
	}
	dates := futureDates(m.last, horizon)
	out := make([]Prediction, horizon)
	for i, d := range dates {
		x := float64(m.n + i)
		out[i] = Prediction{Date: d, Value: math.Max(0, m.intercept+m.slope*x)}
	}
	return out, nil
}

// Report implements Reporter
func (m *LinearModel) Report() FitReport {
	return FitReport{Method: "ols", Status: "closed form"}
}
