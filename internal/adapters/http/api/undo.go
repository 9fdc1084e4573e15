// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// UndoDependencies defines the interface for reversing picks.
type UndoDependencies interface {
	Undraft(ctx context.Context, candidateID string) error
	UndoLastN(ctx context.Context, n int) (int, error)
	Reset(ctx context.Context) error
}

// UndoHandler handles pick reversal requests.
type UndoHandler struct {
	deps UndoDependencies
}

// NewUndoHandler creates a new undo handler.
func NewUndoHandler(deps UndoDependencies) *UndoHandler {
	return &UndoHandler{deps: deps}
}

type undraftRequest struct {
	CandidateID string `json:"candidate_id"`
}

type undoRequest struct {
	Count int `json:"count"`
}

type undoResponse struct {
	Undone int `json:"undone"`
}

// HandlePostUndraft handles POST /undraft requests.
func (h *UndoHandler) HandlePostUndraft(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_undraft"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req undraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.CandidateID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.Undraft(r.Context(), req.CandidateID); err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reversed"})
}

// HandlePostUndo handles POST /undo requests. A missing count undoes one
// pick.
func (h *UndoHandler) HandlePostUndo(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_undo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	req := undoRequest{Count: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}

	undone, err := h.deps.UndoLastN(r.Context(), req.Count)
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, undoResponse{Undone: undone})
}

// HandlePostReset handles POST /reset requests.
func (h *UndoHandler) HandlePostReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reset(r.Context()); err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
