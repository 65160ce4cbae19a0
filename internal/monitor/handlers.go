package monitor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/HerbHall/coopsense/internal/engine"
	"github.com/HerbHall/coopsense/internal/server"
	"github.com/HerbHall/coopsense/pkg/risk"
	"go.uber.org/zap"
)

// Handler exposes the monitor's HTTP API.
type Handler struct {
	mon    *Monitor
	logger *zap.Logger
}

// Compile-time check that Handler satisfies the server's route interface.
var _ server.RouteRegistrar = (*Handler)(nil)

// NewHandler creates the monitor HTTP handler.
func NewHandler(mon *Monitor, logger *zap.Logger) *Handler {
	return &Handler{mon: mon, logger: logger}
}

// RegisterRoutes registers monitor routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/monitor/latest", h.handleLatest)
	mux.HandleFunc("GET /api/v1/monitor/history", h.handleHistory)
	mux.HandleFunc("GET /api/v1/monitor/alert", h.handleAlert)
	mux.HandleFunc("GET /api/v1/monitor/ranges", h.handleRanges)
	mux.HandleFunc("POST /api/v1/monitor/predict", h.handlePredict)
}

// handleLatest returns the latest composed tick result.
//
//	@Summary		Latest snapshot
//	@Description	Returns the composed result of the most recent accepted sampling tick.
//	@Tags			monitor
//	@Produce		json
//	@Success		200	{object}	Snapshot
//	@Failure		404	{object}	server.Problem
//	@Router			/monitor/latest [get]
func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	snap := h.mon.Latest()
	if snap == nil {
		server.NotFound(w, "no sample accepted yet", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HistoryResponse is the response for GET /monitor/history.
type HistoryResponse struct {
	Samples  []risk.Sample `json:"samples"`
	Count    int           `json:"count"`
	Capacity int           `json:"capacity"`
}

// handleHistory returns the recent sample window, oldest first.
//
//	@Summary		Sample history
//	@Description	Returns the sliding window of recent scored samples in arrival order.
//	@Tags			monitor
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum samples, newest kept"	default(20)
//	@Success		200		{object}	HistoryResponse
//	@Router			/monitor/history [get]
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	samples := h.mon.HistorySamples()

	if q := r.URL.Query().Get("limit"); q != "" {
		limit, err := strconv.Atoi(q)
		if err != nil || limit < 0 {
			server.BadRequest(w, "limit must be a non-negative integer", r.URL.Path)
			return
		}
		if limit < len(samples) {
			samples = samples[len(samples)-limit:]
		}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Samples:  samples,
		Count:    len(samples),
		Capacity: h.mon.cfg.HistorySize,
	})
}

// AlertResponse is the response for GET /monitor/alert.
type AlertResponse struct {
	State AlertState `json:"state"`
	Alert *Alert     `json:"alert,omitempty"`
}

// handleAlert returns the alert coordinator state.
//
//	@Summary		Alert state
//	@Description	Returns the debounce state machine state and the active alert, if any.
//	@Tags			monitor
//	@Produce		json
//	@Success		200	{object}	AlertResponse
//	@Router			/monitor/alert [get]
func (h *Handler) handleAlert(w http.ResponseWriter, _ *http.Request) {
	state, alert := h.mon.AlertStatus()
	writeJSON(w, http.StatusOK, AlertResponse{State: state, Alert: alert})
}

// handleRanges returns the configured range table.
//
//	@Summary		Range table
//	@Description	Returns the configured per-feature optimal ranges, baselines, and weights.
//	@Tags			monitor
//	@Produce		json
//	@Success		200	{array}	engine.Range
//	@Router			/monitor/ranges [get]
func (h *Handler) handleRanges(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.mon.Ranges())
}

// handlePredict scores a caller-supplied reading without touching loop state.
//
//	@Summary		Score a reading
//	@Description	Validates and scores a reading, returning the anomaly verdict and feature attributions.
//	@Tags			monitor
//	@Accept			json
//	@Produce		json
//	@Param			reading	body		risk.Reading	true	"Sensor reading"
//	@Success		200		{object}	risk.Prediction
//	@Failure		400		{object}	server.Problem
//	@Router			/monitor/predict [post]
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var reading risk.Reading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		server.BadRequest(w, "invalid JSON body: "+err.Error(), r.URL.Path)
		return
	}

	pred, err := h.mon.Predict(reading)
	if err != nil {
		if errors.Is(err, engine.ErrValidation) {
			server.BadRequest(w, err.Error(), r.URL.Path)
			return
		}
		h.logger.Error("predict failed", zap.Error(err))
		server.InternalError(w, "failed to score reading", r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, pred)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
