package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	t.Run("fills gaps with zero", func(t *testing.T) {
		series, err := Aggregate([]models.TransactionRecord{
			{TransactionDate: "2024-01-01", Amount: "-10"},
			{TransactionDate: "2024-01-03", Amount: "20"},
		})
		require.NoError(t, err)
		require.Len(t, series, 3)

		assert.Equal(t, day(2024, 1, 1), series[0].Date)
		assert.Equal(t, 10.0, series[0].Total)
		assert.Equal(t, day(2024, 1, 2), series[1].Date)
		assert.Equal(t, 0.0, series[1].Total)
		assert.Equal(t, day(2024, 1, 3), series[2].Date)
		assert.Equal(t, 20.0, series[2].Total)
	})

	t.Run("sums absolute amounts on duplicate dates", func(t *testing.T) {
		series, err := Aggregate([]models.TransactionRecord{
			{TransactionDate: "2024-03-05", Amount: "-12.10"},
			{TransactionDate: "2024-03-05T18:30:00Z", Amount: "7.45"},
			{TransactionDate: "2024-03-05 09:00:00", Amount: "-0.45"},
			{TransactionDate: "2024-03-06", Amount: "1"},
		})
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, 20.0, series[0].Total)
		assert.Equal(t, 1.0, series[1].Total)
	})

	t.Run("unordered input yields one point per day in order", func(t *testing.T) {
		series, err := Aggregate([]models.TransactionRecord{
			{TransactionDate: "2024-02-27", Amount: "3"},
			{TransactionDate: "2024-02-25", Amount: "1"},
			{TransactionDate: "2024-03-02", Amount: "2"},
		})
		require.NoError(t, err)
		require.Len(t, series, 7) // Feb 25..Mar 2 in a leap year

		for i := 1; i < len(series); i++ {
			assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
		}
		assert.Equal(t, day(2024, 2, 29), series[4].Date)
	})

	t.Run("single date yields a single point", func(t *testing.T) {
		series, err := Aggregate([]models.TransactionRecord{
			{TransactionDate: "2024-01-01", Amount: "5"},
			{TransactionDate: "2024-01-01", Amount: "5"},
		})
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, 10.0, series[0].Total)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Aggregate(nil)
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, MsgEmptyHistory, inputErr.Message)
	})
}

func TestAggregateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		record  models.TransactionRecord
		wantMsg string
	}{
		{"unparseable date", models.TransactionRecord{TransactionDate: "next tuesday", Amount: "1"}, "invalid transaction_date at index 1"},
		{"missing date", models.TransactionRecord{Amount: "1"}, "invalid transaction_date at index 1"},
		{"non numeric amount", models.TransactionRecord{TransactionDate: "2024-01-02", Amount: "ten"}, `invalid amount "ten" at index 1`},
		{"missing amount", models.TransactionRecord{TransactionDate: "2024-01-02"}, `invalid amount "" at index 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate([]models.TransactionRecord{
				{TransactionDate: "2024-01-01", Amount: "1"},
				tt.record,
			})
			var dataErr *DataError
			require.True(t, errors.As(err, &dataErr), "want DataError, got %v", err)
			assert.Equal(t, tt.wantMsg, dataErr.Message)
			assert.Error(t, dataErr.Cause)
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{
		"2024-05-17",
		"2024-05-17T00:00:00Z",
		"2024-05-17T23:59:59.999Z",
		"2024-05-17T10:00:00+10:00",
		"2024-05-17T10:00:00",
		" 2024-05-17 10:00:00 ",
	} {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, day(2024, 5, 17), got, raw)
	}
}
