package models

import "time"

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// DailyPoint represents total spending for one calendar day
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// DailySeries is a gap-free, chronologically ordered run of DailyPoint
type DailySeries []DailyPoint

// First returns the earliest date of the series
func (s DailySeries) First() time.Time {
	return s[0].Date
}

// Last returns the latest date of the series
func (s DailySeries) Last() time.Time {
	return s[len(s)-1].Date
}

// Totals returns the daily totals in order
func (s DailySeries) Totals() []float64 {
	totals := make([]float64, len(s))
	for i, p := range s {
		totals[i] = p.Total
	}
	return totals
}

// HolidayEvent is a calendar event regressor affecting only its own date
type HolidayEvent struct {
	Name        string    `json:"holiday"`
	Date        time.Time `json:"ds"`
	LowerWindow int       `json:"lower_window"`
	UpperWindow int       `json:"upper_window"`
}

// HolidayTable is a collection of HolidayEvent, possibly empty
type HolidayTable []HolidayEvent

// Names returns the distinct event names in first-seen order
func (t HolidayTable) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range t {
		if !seen[h.Name] {
			seen[h.Name] = true
			names = append(names, h.Name)
		}
	}
	return names
}

// ForecastPoint is one entry of the response timeline.
// Exactly one of Actual and Predicted is set.
type ForecastPoint struct {
	Date      string   `json:"date"` // Format: YYYY-MM-DD
	Actual    *float64 `json:"actual"`
	Predicted *float64 `json:"predicted"`
}

// ForecastSummary condenses a timeline for notifications
type ForecastSummary struct {
	UserID         int64   `json:"user_id"`
	HistoryDays    int     `json:"history_days"`
	ForecastDays   int     `json:"forecast_days"`
	PredictedTotal float64 `json:"predicted_total"`
	PeakDate       string  `json:"peak_date"`
	PeakAmount     float64 `json:"peak_amount"`
}
