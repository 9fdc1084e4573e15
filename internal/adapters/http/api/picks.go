// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// PickDependencies defines the interface for recording local picks.
type PickDependencies interface {
	Draft(ctx context.Context, candidateID string, team, overallPick int) error
}

// PicksHandler handles local pick requests.
type PicksHandler struct {
	deps PickDependencies
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(deps PickDependencies) *PicksHandler {
	return &PicksHandler{deps: deps}
}

// HandlePostPick handles POST /picks requests. Local picks apply
// synchronously so the caller's next board read reflects them.
func (h *PicksHandler) HandlePostPick(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_pick"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.Draft(r.Context(), req.CandidateID, req.Team, req.OverallPick); err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "recorded"})
}
