// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"io"
	"net/http"
)

// maxSnapshotBytes bounds the accepted import payload.
const maxSnapshotBytes = 32 << 20

// SnapshotDependencies defines the interface for snapshot transfer.
type SnapshotDependencies interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	ImportJSON(ctx context.Context, data []byte) error
}

// SnapshotHandler handles snapshot export and import.
type SnapshotHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandleSnapshot handles GET /snapshot (export) and POST /snapshot
// (import) requests.
func (h *SnapshotHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleExport(w, r)
	case http.MethodPost:
		h.handleImport(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SnapshotHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_snapshot"
	data, err := h.deps.ExportJSON(r.Context())
	if err != nil {
		status, code := statusForDraftError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="draft-snapshot.json"`)
	_, _ = w.Write(data)
}

func (h *SnapshotHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_snapshot"
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.ImportJSON(r.Context(), data); err != nil {
		writeError(w, http.StatusBadRequest, "bad_snapshot", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "imported"})
}
