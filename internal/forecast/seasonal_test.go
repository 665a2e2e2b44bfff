package forecast

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisySeries builds daily totals of base plus uniform noise, adding spike on
// the given day of month.
func noisySeries(start time.Time, days int, base, spike float64, spikeDay int) models.DailySeries {
	rng := rand.New(rand.NewSource(7))
	series := make(models.DailySeries, days)
	for i := range series {
		d := start.AddDate(0, 0, i)
		v := base + (rng.Float64()*2-1)*3
		if d.Day() == spikeDay {
			v += spike
		}
		series[i] = models.DailyPoint{Date: d, Total: v}
	}
	return series
}

func assertConsecutiveAfter(t *testing.T, last time.Time, preds []Prediction) {
	t.Helper()
	require.Len(t, preds, ForecastHorizon)
	for i, p := range preds {
		assert.Equal(t, last.AddDate(0, 0, i+1), p.Date)
	}
}

func TestSeasonalModelShortHistory(t *testing.T) {
	series := seriesOf(10, 0, 20)
	m := NewSeasonalModel(SeasonalOptions{})
	require.NoError(t, m.Fit(context.Background(), series))

	preds, err := m.Predict(ForecastHorizon)
	require.NoError(t, err)
	assertConsecutiveAfter(t, series.Last(), preds)
	for _, p := range preds {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Value, DefaultGrowthCap)
	}
	assert.NotEmpty(t, m.Report().Method)
}

func TestSeasonalModelInsufficientHistory(t *testing.T) {
	err := NewSeasonalModel(SeasonalOptions{}).Fit(context.Background(), seriesOf(5))

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, MsgInsufficientHistory, dataErr.Message)
}

func TestSeasonalModelTracksLevel(t *testing.T) {
	series := noisySeries(day(2024, 1, 1), 120, 50, 0, 0)
	m := NewSeasonalModel(SeasonalOptions{})
	require.NoError(t, m.Fit(context.Background(), series))

	preds, err := m.Predict(ForecastHorizon)
	require.NoError(t, err)
	assertConsecutiveAfter(t, series.Last(), preds)

	var sum float64
	for _, p := range preds {
		sum += p.Value
	}
	assert.InDelta(t, 50.0, sum/float64(len(preds)), 15.0)
}

func TestSeasonalModelSubscriptionDaySpikes(t *testing.T) {
	start := day(2024, 1, 1)
	series := noisySeries(start, 121, 20, 400, 15) // Jan 1 to Apr 30
	holidays := DetectSubscriptionHolidays([]models.TransactionRecord{
		{TransactionDate: "2024-01-15", Amount: "400", Category: "subscription"},
	}, HorizonAround(series.Last()))

	m := NewSeasonalModel(SeasonalOptions{Holidays: holidays})
	require.NoError(t, m.Fit(context.Background(), series))

	preds, err := m.Predict(ForecastHorizon)
	require.NoError(t, err)

	var spike float64
	var others []float64
	for _, p := range preds {
		if p.Date.Equal(day(2024, 5, 15)) {
			spike = p.Value
			continue
		}
		others = append(others, p.Value)
	}
	sort.Float64s(others)
	median := others[len(others)/2]
	assert.Greater(t, spike, 3*median+50, "spike %.2f median %.2f", spike, median)
}

func TestSeasonalModelClipsAtCap(t *testing.T) {
	series := noisySeries(day(2024, 1, 1), 60, 500, 0, 0)
	m := NewSeasonalModel(SeasonalOptions{GrowthCap: 100})
	require.NoError(t, m.Fit(context.Background(), series))
	assert.Equal(t, 100.0, m.GrowthCap())

	preds, err := m.Predict(ForecastHorizon)
	require.NoError(t, err)
	for _, p := range preds {
		assert.LessOrEqual(t, p.Value, 100.0)
		assert.GreaterOrEqual(t, p.Value, 0.0)
	}
}

func TestSeasonalModelIsDeterministic(t *testing.T) {
	series := noisySeries(day(2024, 3, 1), 45, 30, 0, 0)

	run := func() []Prediction {
		m := NewSeasonalModel(SeasonalOptions{})
		require.NoError(t, m.Fit(context.Background(), series))
		preds, err := m.Predict(ForecastHorizon)
		require.NoError(t, err)
		return preds
	}
	assert.Equal(t, run(), run())
}

func TestSeasonalModelHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSeasonalModel(SeasonalOptions{}).Fit(ctx, seriesOf(1, 2, 3, 4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeasonalModelPredictBeforeFit(t *testing.T) {
	_, err := NewSeasonalModel(SeasonalOptions{}).Predict(ForecastHorizon)
	assert.Error(t, err)
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(Options{Kind: KindLinear})
	require.NoError(t, err)
	assert.IsType(t, &LinearModel{}, m)

	m, err = NewModel(Options{})
	require.NoError(t, err)
	assert.IsType(t, &SeasonalModel{}, m)

	_, err = NewModel(Options{Kind: "arima"})
	assert.Error(t, err)

	kind, err := ParseKind(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, KindLinear, kind)
}
