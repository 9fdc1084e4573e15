// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/ingestion"
)

// CandidateDependencies defines the interface for candidate pool loads.
type CandidateDependencies interface {
	LoadCandidates(ctx context.Context, candidates []model.Candidate) error
}

// CandidatesHandler handles candidate pool uploads.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

type loadResponse struct {
	Loaded   int      `json:"loaded"`
	Warnings []string `json:"warnings,omitempty"`
}

// HandlePostCandidates handles POST /candidates requests. The body is
// either the app-export CSV (Content-Type text/csv) or a JSON candidate
// array. Loading a pool resets any draft in progress.
func (h *CandidatesHandler) HandlePostCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_candidates"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var (
		candidates []model.Candidate
		warnings   []string
	)
	if strings.Contains(r.Header.Get("Content-Type"), "text/csv") {
		var err error
		candidates, warnings, err = ingestion.Load(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_csv", WrapKind(op, ErrBadRequest, err))
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&candidates); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}

	if err := h.deps.LoadCandidates(r.Context(), candidates); err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, loadResponse{Loaded: len(candidates), Warnings: warnings})
}
