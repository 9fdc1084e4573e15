// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/sherrin/internal/adapters/mq/queue"
	service "github.com/okian/sherrin/internal/app"
	"github.com/okian/sherrin/internal/draft/engine"
	"github.com/okian/sherrin/internal/draft/forecast"
	"github.com/okian/sherrin/internal/draft/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Idempotency and async application for externally observed picks.
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	Enqueue(ctx context.Context, e queue.Event) bool

	// Draft mutations.
	LoadCandidates(ctx context.Context, candidates []model.Candidate) error
	Draft(ctx context.Context, candidateID string, team, overallPick int) error
	Undraft(ctx context.Context, candidateID string) error
	UndoLastN(ctx context.Context, n int) (int, error)
	Reset(ctx context.Context) error

	// Read operations.
	Board(ctx context.Context) (engine.Board, error)
	Forecast(ctx context.Context) (forecast.Forecast, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	ImportJSON(ctx context.Context, data []byte) error
}

// Server wires HTTP routes for the draft API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	boardHandler      *BoardHandler
	forecastHandler   *ForecastHandler
	picksHandler      *PicksHandler
	eventsHandler     *EventsHandler
	undoHandler       *UndoHandler
	snapshotHandler   *SnapshotHandler
	candidatesHandler *CandidatesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		boardHandler:      NewBoardHandler(deps, defaultMaxBoardLimit),
		forecastHandler:   NewForecastHandler(deps),
		picksHandler:      NewPicksHandler(deps),
		eventsHandler:     NewEventsHandler(deps),
		undoHandler:       NewUndoHandler(deps),
		snapshotHandler:   NewSnapshotHandler(deps),
		candidatesHandler: NewCandidatesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	mux.HandleFunc("/scarcity", MetricsMiddleware(s.boardHandler.HandleGetScarcity, "scarcity"))
	mux.HandleFunc("/runs", MetricsMiddleware(s.boardHandler.HandleGetRuns, "runs"))
	mux.HandleFunc("/forecast", MetricsMiddleware(s.forecastHandler.HandleGetForecast, "forecast"))
	mux.HandleFunc("/picks", MetricsMiddleware(s.picksHandler.HandlePostPick, "picks"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/undraft", MetricsMiddleware(s.undoHandler.HandlePostUndraft, "undraft"))
	mux.HandleFunc("/undo", MetricsMiddleware(s.undoHandler.HandlePostUndo, "undo"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.undoHandler.HandlePostReset, "reset"))
	mux.HandleFunc("/snapshot", MetricsMiddleware(s.snapshotHandler.HandleSnapshot, "snapshot"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.candidatesHandler.HandlePostCandidates, "candidates"))
}

// pickRequest mirrors the wire schema for POST /picks.
type pickRequest struct {
	CandidateID string `json:"candidate_id"`
	Team        int    `json:"team"`
	OverallPick int    `json:"overall_pick"`
}

func (p pickRequest) validate() error {
	switch {
	case strings.TrimSpace(p.CandidateID) == "":
		return errors.New("missing candidate_id")
	case p.Team < 1:
		return errors.New("missing team")
	case p.OverallPick < 0:
		return errors.New("negative overall_pick")
	}
	return nil
}

// eventRequest mirrors the wire schema for POST /events.
type eventRequest struct {
	EventID     string `json:"event_id"`
	CandidateID string `json:"candidate_id"`
	Team        int    `json:"team"`
	OverallPick int    `json:"overall_pick"`
	TS          string `json:"ts"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(e.CandidateID) == "":
		return errors.New("missing candidate_id")
	case e.Team < 1:
		return errors.New("missing team")
	}
	if e.TS != "" {
		if _, err := time.Parse(time.RFC3339, e.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusForDraftError translates service sentinels to HTTP status codes.
func statusForDraftError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnknownCandidate):
		return http.StatusNotFound, "unknown_candidate"
	case errors.Is(err, service.ErrAlreadyDrafted):
		return http.StatusConflict, "already_drafted"
	case errors.Is(err, service.ErrNotDrafted):
		return http.StatusConflict, "not_drafted"
	case errors.Is(err, service.ErrPickInPast):
		return http.StatusConflict, "pick_in_past"
	case errors.Is(err, service.ErrBadTeam),
		errors.Is(err, service.ErrBadUndoCount),
		errors.Is(err, service.ErrEmptyPool):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_started"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
