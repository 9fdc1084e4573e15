// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/sherrin/internal/draft/forecast"
)

// ForecastDependencies defines the interface for pick forecasting.
type ForecastDependencies interface {
	Forecast(ctx context.Context) (forecast.Forecast, error)
}

// ForecastHandler handles forecast requests.
type ForecastHandler struct {
	deps ForecastDependencies
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(deps ForecastDependencies) *ForecastHandler {
	return &ForecastHandler{deps: deps}
}

// HandleGetForecast handles GET /forecast requests.
func (h *ForecastHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_forecast"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := h.deps.Forecast(r.Context())
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}
