// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/sherrin/internal/adapters/mq/queue"
	"github.com/okian/sherrin/internal/draft/model"
)

// EventDependencies defines the interface for external pick ingestion.
type EventDependencies interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	Enqueue(ctx context.Context, e queue.Event) bool
}

// EventsHandler handles externally observed pick events.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /events requests. Events are deduped by
// event_id and applied asynchronously in arrival order.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	ts := time.Time{}
	if req.TS != "" {
		ts, _ = time.Parse(time.RFC3339, req.TS)
	}
	e := model.DraftEvent{
		EventID:     req.EventID,
		CandidateID: req.CandidateID,
		Team:        req.Team,
		OverallPick: req.OverallPick,
		TS:          ts,
	}
	if ok := h.deps.Enqueue(r.Context(), e); !ok {
		// Roll back the "seen" status since enqueue failed.
		h.deps.Unrecord(r.Context(), req.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
