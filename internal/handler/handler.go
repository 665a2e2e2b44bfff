package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/spend-forecast/internal/forecast"
	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/Dan9191/spend-forecast/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 10 << 20

// Handler serves the forecast HTTP API
type Handler struct {
	svc     *service.Service
	log     *logrus.Logger
	timeout time.Duration
}

// NewHandler creates a handler. A zero timeout disables the per-request deadline.
func NewHandler(svc *service.Service, log *logrus.Logger, timeout time.Duration) *Handler {
	return &Handler{svc: svc, log: log, timeout: timeout}
}

// Register mounts the routes on r. The per-user route is only mounted when
// stored history is available.
func (h *Handler) Register(r *mux.Router, withHistory bool) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/predict", h.Predict).Methods(http.MethodPost)
	if withHistory {
		r.HandleFunc("/users/{userID:[0-9]+}/forecast", h.UserForecast).Methods(http.MethodGet)
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Predict forecasts the history posted in the request body
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	history, err := decodeHistory(r)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	timeline, err := h.svc.Forecast(ctx, history)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}
	h.writeTimeline(w, r, timeline)
}

// UserForecast forecasts the stored history of the user in the path
func (h *Handler) UserForecast(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	timeline, err := h.svc.ForecastForUser(ctx, userID)
	if err != nil {
		h.writeForecastError(w, r, err)
		return
	}
	h.writeTimeline(w, r, timeline)
}

func (h *Handler) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.timeout)
}

// decodeHistory extracts the history list. Any problem with the payload
// shape is reported with the same message as a missing key.
func decodeHistory(r *http.Request) ([]models.TransactionRecord, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, forecast.NewInputError(forecast.MsgMissingHistory)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, forecast.NewInputError(forecast.MsgMissingHistory)
	}
	raw, ok := payload["history"]
	if !ok {
		return nil, forecast.NewInputError(forecast.MsgMissingHistory)
	}

	var history []models.TransactionRecord
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, forecast.NewInputError(forecast.MsgMissingHistory)
	}
	if len(history) == 0 {
		return nil, forecast.NewInputError(forecast.MsgEmptyHistory)
	}
	return history, nil
}

func (h *Handler) writeForecastError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		inputErr *forecast.InputError
		dataErr  *forecast.DataError
		compErr  *forecast.ComputationError
	)
	entry := h.log.WithField("path", r.URL.Path)

	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &dataErr):
		writeError(w, http.StatusBadRequest, dataErr.Error())
	case errors.As(err, &compErr):
		entry.Errorf("Forecast computation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate forecast: model did not converge.")
	case errors.Is(err, context.DeadlineExceeded):
		entry.Warnf("Forecast timed out: %v", err)
		writeError(w, http.StatusGatewayTimeout, "Forecast timed out.")
	case errors.Is(err, context.Canceled):
		entry.Debugf("Forecast canceled: %v", err)
		writeError(w, http.StatusServiceUnavailable, "Forecast canceled.")
	default:
		entry.Errorf("Forecast error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate forecast.")
	}
}

func (h *Handler) writeTimeline(w http.ResponseWriter, r *http.Request, timeline []models.ForecastPoint) {
	if wantsXML(r) {
		if err := writeXML(w, http.StatusOK, timeline); err != nil {
			h.log.Errorf("Failed to write XML response: %v", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
