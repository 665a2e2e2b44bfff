package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(totals ...float64) models.DailySeries {
	series := make(models.DailySeries, len(totals))
	for i, v := range totals {
		series[i] = models.DailyPoint{Date: day(2024, 1, 1).AddDate(0, 0, i), Total: v}
	}
	return series
}

func TestLinearModel(t *testing.T) {
	t.Run("extends the fitted line", func(t *testing.T) {
		m := NewLinearModel()
		require.NoError(t, m.Fit(context.Background(), seriesOf(10, 0, 20)))

		preds, err := m.Predict(ForecastHorizon)
		require.NoError(t, err)
		require.Len(t, preds, ForecastHorizon)

		// intercept 5, slope 5
		assert.InDelta(t, 20.0, preds[0].Value, 1e-9)
		assert.InDelta(t, 25.0, preds[1].Value, 1e-9)
		assert.Equal(t, day(2024, 1, 4), preds[0].Date)
		assert.Equal(t, day(2024, 2, 2), preds[29].Date)
	})

	t.Run("clips negative predictions", func(t *testing.T) {
		m := NewLinearModel()
		require.NoError(t, m.Fit(context.Background(), seriesOf(30, 20, 10)))

		preds, err := m.Predict(ForecastHorizon)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, preds[0].Value, 1e-9)
		for _, p := range preds {
			assert.GreaterOrEqual(t, p.Value, 0.0)
		}
	})

	t.Run("needs two days", func(t *testing.T) {
		err := NewLinearModel().Fit(context.Background(), seriesOf(5))
		var dataErr *DataError
		require.True(t, errors.As(err, &dataErr))
		assert.Equal(t, MsgInsufficientHistory, dataErr.Error())
	})

	t.Run("predict before fit", func(t *testing.T) {
		_, err := NewLinearModel().Predict(ForecastHorizon)
		assert.Error(t, err)
	})
}
