package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/spend-forecast/internal/config"
	"github.com/Dan9191/spend-forecast/internal/forecast"
	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock_history.go -package=service github.com/Dan9191/spend-forecast/internal/service HistoryRepository

// HistoryRepository loads stored spending history for a user
type HistoryRepository interface {
	ListSpendingHistory(ctx context.Context, userID int64) ([]models.TransactionRecord, error)
}

// ErrHistoryUnavailable is returned when no history repository is configured
var ErrHistoryUnavailable = errors.New("history repository not configured")

// Service runs the forecasting pipeline
type Service struct {
	repo   HistoryRepository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service. repo may be nil when no database is configured.
func NewService(repo HistoryRepository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// Forecast aggregates the history, detects subscription days, fits a fresh
// model and returns the merged actual/predicted timeline.
func (s *Service) Forecast(ctx context.Context, history []models.TransactionRecord) ([]models.ForecastPoint, error) {
	if len(history) == 0 {
		return nil, forecast.NewInputError(forecast.MsgEmptyHistory)
	}

	started := time.Now()
	series, err := forecast.Aggregate(history)
	if err != nil {
		return nil, err
	}

	holidays := forecast.DetectSubscriptionHolidays(history, forecast.HorizonAround(series.Last()))

	model, err := forecast.NewModel(forecast.Options{
		Kind:      s.config.ForecastModel,
		GrowthCap: s.config.GrowthCap,
		Holidays:  holidays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	if err := model.Fit(ctx, series); err != nil {
		return nil, err
	}
	predictions, err := model.Predict(forecast.ForecastHorizon)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"transactions":    len(history),
		"history_days":    len(series),
		"holiday_events":  len(holidays),
		"holiday_groups":  len(holidays.Names()),
		"model":           string(s.config.ForecastModel),
		"elapsed_ms":      time.Since(started).Milliseconds(),
		"forecast_points": len(predictions),
	}
	if r, ok := model.(forecast.Reporter); ok {
		report := r.Report()
		fields["optimizer"] = report.Method
		fields["optimizer_status"] = report.Status
		fields["optimizer_iterations"] = report.Iterations
	}
	s.log.WithFields(fields).Info("Forecast generated")

	return forecast.MergeTimeline(series, predictions), nil
}

// ForecastForUser loads the user's stored spending history and forecasts it
func (s *Service) ForecastForUser(ctx context.Context, userID int64) ([]models.ForecastPoint, error) {
	if s.repo == nil {
		return nil, ErrHistoryUnavailable
	}

	history, err := s.repo.ListSpendingHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for user %d: %w", userID, err)
	}
	s.log.Debugf("Loaded %d transactions for user %d", len(history), userID)

	return s.Forecast(ctx, history)
}

// SummarizeForUser forecasts the user's history and condenses the result
func (s *Service) SummarizeForUser(ctx context.Context, userID int64) (*models.ForecastSummary, error) {
	timeline, err := s.ForecastForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := forecast.Summarize(timeline)
	summary.UserID = userID
	return &summary, nil
}
