package forecast

import "github.com/Dan9191/spend-forecast/internal/models"

// MergeTimeline lists historical points (actual only) followed by forecast
// points (predicted only). The forecast must start after the last historical day.
func MergeTimeline(series models.DailySeries, predictions []Prediction) []models.ForecastPoint {
	timeline := make([]models.ForecastPoint, 0, len(series)+len(predictions))
	for _, p := range series {
		actual := p.Total
		timeline = append(timeline, models.ForecastPoint{
			Date:   p.Date.Format(models.DateLayout),
			Actual: &actual,
		})
	}
	for _, p := range predictions {
		predicted := p.Value
		timeline = append(timeline, models.ForecastPoint{
			Date:      p.Date.Format(models.DateLayout),
			Predicted: &predicted,
		})
	}
	return timeline
}

// Summarize totals the predicted part of a timeline and finds its peak day
func Summarize(timeline []models.ForecastPoint) models.ForecastSummary {
	var summary models.ForecastSummary
	for _, p := range timeline {
		if p.Actual != nil {
			summary.HistoryDays++
			continue
		}
		if p.Predicted == nil {
			continue
		}
		summary.ForecastDays++
		summary.PredictedTotal += *p.Predicted
		if summary.PeakDate == "" || *p.Predicted > summary.PeakAmount {
			summary.PeakDate = p.Date
			summary.PeakAmount = *p.Predicted
		}
	}
	return summary
}
