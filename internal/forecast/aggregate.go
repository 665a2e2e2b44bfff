package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
}

// ParseDate parses a transaction date and truncates it to its calendar day in UTC.
// The calendar day is taken as written, without converting time zones.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return civilDate(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}

// ParseAmount parses an amount and returns its magnitude
func ParseAmount(raw models.RawAmount) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(string(raw)))
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Abs(), nil
}

// Aggregate sums absolute transaction amounts per calendar day and fills every
// day between the earliest and the latest transaction, zero for idle days.
func Aggregate(records []models.TransactionRecord) (models.DailySeries, error) {
	if len(records) == 0 {
		return nil, NewInputError(MsgEmptyHistory)
	}

	totals := make(map[time.Time]decimal.Decimal, len(records))
	var first, last time.Time
	for i, rec := range records {
		day, err := ParseDate(rec.TransactionDate)
		if err != nil {
			return nil, &DataError{
				Message: fmt.Sprintf("invalid transaction_date at index %d", i),
				Cause:   err,
			}
		}
		amount, err := ParseAmount(rec.Amount)
		if err != nil {
			return nil, &DataError{
				Message: fmt.Sprintf("invalid amount %q at index %d", string(rec.Amount), i),
				Cause:   err,
			}
		}

		totals[day] = totals[day].Add(amount)
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	series := make(models.DailySeries, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		series = append(series, models.DailyPoint{
			Date:  d,
			Total: totals[d].InexactFloat64(),
		})
	}
	return series, nil
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
