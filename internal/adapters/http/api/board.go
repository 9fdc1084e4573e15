// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/sherrin/internal/draft/engine"
)

// defaultMaxBoardLimit caps the limit query parameter on board reads.
const defaultMaxBoardLimit = 1000

// BoardDependencies defines the interface for board evaluations.
type BoardDependencies interface {
	Board(ctx context.Context) (engine.Board, error)
}

// BoardHandler handles board, scarcity and run requests. All three read
// from the same evaluation.
type BoardHandler struct {
	deps     BoardDependencies
	maxLimit int
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies, maxLimit int) *BoardHandler {
	return &BoardHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetBoard handles GET /board?limit=N requests. The limit applies to
// the metrics rows only; omitting it returns the full board.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	board, err := h.deps.Board(r.Context())
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	if limit > 0 && len(board.Metrics) > limit {
		board.Metrics = board.Metrics[:limit]
	}
	writeJSON(w, http.StatusOK, board)
}

// HandleGetScarcity handles GET /scarcity requests.
func (h *BoardHandler) HandleGetScarcity(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scarcity"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Board(r.Context())
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board.Scarcity)
}

// HandleGetRuns handles GET /runs requests.
func (h *BoardHandler) HandleGetRuns(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_runs"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Board(r.Context())
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board.Runs)
}
