package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
)

// Kind selects a model implementation
type Kind string

const (
	// KindSeasonal is the capacity-bounded trend with monthly seasonality and holidays
	KindSeasonal Kind = "seasonal"
	// KindLinear is ordinary least squares against the day index
	KindLinear Kind = "linear"
)

// ParseKind validates a model kind name
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindSeasonal:
		return KindSeasonal, nil
	case KindLinear:
		return KindLinear, nil
	default:
		return "", fmt.Errorf("unknown forecast model %q", raw)
	}
}

var errNotFitted = errors.New("model has not been fitted")

// Prediction is a projected spending value for one future day
type Prediction struct {
	Date  time.Time
	Value float64
}

// Model fits a daily series once and projects it forward.
// Implementations are single-use and not safe for concurrent use.
type Model interface {
	Fit(ctx context.Context, series models.DailySeries) error
	Predict(horizon int) ([]Prediction, error)
}

// FitReport describes how a fit went, for logging
type FitReport struct {
	Method     string
	Status     string
	Iterations int
	Objective  float64
}

// Reporter is implemented by models that expose fit diagnostics
type Reporter interface {
	Report() FitReport
}

// Options configures NewModel
type Options struct {
	Kind      Kind
	GrowthCap float64
	Holidays  models.HolidayTable
}

// NewModel builds a fresh, unfitted model
func NewModel(opts Options) (Model, error) {
	switch opts.Kind {
	case "", KindSeasonal:
		return NewSeasonalModel(SeasonalOptions{
			GrowthCap: opts.GrowthCap,
			Holidays:  opts.Holidays,
		}), nil
	case KindLinear:
		return NewLinearModel(), nil
	default:
		return nil, fmt.Errorf("unknown forecast model %q", opts.Kind)
	}
}

func requireHistory(series models.DailySeries) error {
	if len(series) < 2 {
		return ErrInsufficientHistory()
	}
	return nil
}

func futureDates(last time.Time, horizon int) []time.Time {
	dates := make([]time.Time, horizon)
	for i := range dates {
		dates[i] = last.AddDate(0, 0, i+1)
	}
	return dates
}
