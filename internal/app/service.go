// Package service provides the core draft service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	pickqueue "github.com/okian/sherrin/internal/adapters/mq/queue"
	applier "github.com/okian/sherrin/internal/adapters/mq/worker"
	repository "github.com/okian/sherrin/internal/adapters/repository"
	"github.com/okian/sherrin/internal/draft/dedupe"
	"github.com/okian/sherrin/internal/draft/engine"
	"github.com/okian/sherrin/internal/draft/forecast"
	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
	"github.com/okian/sherrin/pkg/logger"
	"github.com/okian/sherrin/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize  = 4096
	defaultDedupeSize = 50000
)

// Service wires the snapshot store, the external pick pipeline and the
// valuation engine behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	queue   pickqueue.Queue
	worker  *applier.InMemoryWorker

	// Configuration
	cfg        roster.Config
	myTeam     int
	queueSize  int
	dedupeSize int

	// State
	started    bool
	workerStop context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRoster sets the league roster configuration.
func WithRoster(cfg roster.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithMyTeam sets the draft slot the service advises for.
func WithMyTeam(team int) Option {
	return func(s *Service) {
		if team > 0 {
			s.myTeam = team
		}
	}
}

// WithStore sets a custom snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithQueueSize sets the capacity of the external pick queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the feed deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:        roster.Default(),
		myTeam:     1,
		queueSize:  defaultQueueSize,
		dedupeSize: defaultDedupeSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("draft")
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid roster configuration: %w", err)
	}
	if s.myTeam > s.cfg.Teams {
		return fmt.Errorf("%w: advised team %d in a %d-team league", ErrBadTeam, s.myTeam, s.cfg.Teams)
	}

	s.logger.Info(ctx, "starting draft service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = pickqueue.NewInMemoryQueue(
		pickqueue.WithCapacity(s.queueSize),
		pickqueue.WithBufferSize(s.queueSize),
	)
	s.worker = applier.NewInMemoryWorker(s.queue, s, applier.WithName("pick-applier"))

	workerCtx, cancel := context.WithCancel(context.Background())
	s.workerStop = cancel
	go s.worker.Run(workerCtx)

	s.started = true
	s.logger.Info(ctx, "draft service started",
		logger.Int("teams", s.cfg.Teams),
		logger.Int("myTeam", s.myTeam),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service. The mutex is released before
// draining so an in-flight apply can finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	q, w, cancel := s.queue, s.worker, s.workerStop
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping draft service...")

	if q != nil {
		_ = q.Close()
	}
	if w != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
		_ = w.Shutdown(shutdownCtx)
		cancelShutdown()
	}
	if cancel != nil {
		cancel()
	}

	s.logger.Info(ctx, "draft service stopped")
}

// LoadCandidates replaces the candidate pool and resets draft state. A
// partially drafted board does not survive a pool reload.
func (s *Service) LoadCandidates(ctx context.Context, candidates []model.Candidate) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrEmptyPool
	}

	snap := model.Snapshot{
		Candidates: append([]model.Candidate(nil), candidates...),
		NextPick:   1,
	}
	if err := s.store.Replace(ctx, snap); err != nil {
		return err
	}
	s.logger.Info(ctx, "candidate pool loaded", logger.Int("candidates", len(candidates)))
	return nil
}

// Draft records a pick for team. overallPick 0 assigns the next pick in
// sequence; an explicit pick must land after every recorded pick.
func (s *Service) Draft(ctx context.Context, candidateID string, team, overallPick int) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	return s.recordPick(ctx, model.DraftEvent{
		EventID:     uuid.NewString(),
		CandidateID: candidateID,
		Team:        team,
		OverallPick: overallPick,
		TS:          time.Now().UTC(),
	}, false)
}

// ApplyExternalPick applies a feed-sourced pick. Re-deliveries of a pick
// whose candidate is already drafted are treated as applied.
func (s *Service) ApplyExternalPick(ctx context.Context, e applier.Event) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	err := s.recordPick(ctx, e, true)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAlreadyDrafted) {
		s.logger.Debug(ctx, "external pick already applied",
			logger.String("eventID", e.EventID),
			logger.String("candidateID", e.CandidateID),
		)
		return nil
	}
	return err
}

// recordPick validates and commits one pick event. external picks carry an
// authoritative overall pick that may fill gaps the local sequence has not
// reached yet.
func (s *Service) recordPick(ctx context.Context, e model.DraftEvent, external bool) error {
	if e.Team < 1 || e.Team > s.cfg.Teams {
		return fmt.Errorf("%w: team %d in a %d-team league", ErrBadTeam, e.Team, s.cfg.Teams)
	}

	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		idx, ok := snap.CandidateByID()[e.CandidateID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCandidate, e.CandidateID)
		}
		if snap.Candidates[idx].Drafted {
			return ErrAlreadyDrafted
		}

		pick := e.OverallPick
		switch {
		case pick == 0:
			pick = snap.NextPick
		case !external && pick <= maxObservedPick(snap.Events):
			return fmt.Errorf("%w: pick %d", ErrPickInPast, pick)
		}

		e.OverallPick = pick
		e.Round = s.cfg.SnakeRound(pick)
		e.PickInRound = s.cfg.SnakeSlot(pick)
		if e.TS.IsZero() {
			e.TS = time.Now().UTC()
		}

		snap.Candidates[idx].Drafted = true
		snap.Candidates[idx].Owner = e.Team
		snap.Candidates[idx].OverallPick = pick
		snap.Events = append(snap.Events, e)
		if pick >= snap.NextPick {
			snap.NextPick = pick + 1
		}
		return nil
	})
	if err != nil {
		metrics.RecordPickRejected()
		return err
	}

	metrics.RecordPick()
	s.logger.Info(ctx, "pick recorded",
		logger.String("candidateID", e.CandidateID),
		logger.Int("team", e.Team),
		logger.Int("overallPick", e.OverallPick),
	)
	return nil
}

// Undraft reverses one pick wherever it sits in the log.
func (s *Service) Undraft(ctx context.Context, candidateID string) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}

	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		idx, ok := snap.CandidateByID()[candidateID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
		}
		if !snap.Candidates[idx].Drafted {
			return fmt.Errorf("%w: %s", ErrNotDrafted, candidateID)
		}

		clearPick(&snap.Candidates[idx])
		kept := snap.Events[:0]
		for _, e := range snap.Events {
			if e.CandidateID != candidateID {
				kept = append(kept, e)
			}
		}
		snap.Events = kept
		snap.NextPick = maxObservedPick(snap.Events) + 1
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordUndo(1)
	s.logger.Info(ctx, "pick reversed", logger.String("candidateID", candidateID))
	return nil
}

// UndoLastN reverses up to n of the most recent picks and returns how many
// were undone.
func (s *Service) UndoLastN(ctx context.Context, n int) (int, error) {
	if err := s.ensureStarted(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrBadUndoCount
	}

	undone := 0
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		byID := snap.CandidateByID()
		for undone < n && len(snap.Events) > 0 {
			last := snap.Events[len(snap.Events)-1]
			snap.Events = snap.Events[:len(snap.Events)-1]
			if idx, ok := byID[last.CandidateID]; ok {
				clearPick(&snap.Candidates[idx])
			}
			undone++
		}
		snap.NextPick = maxObservedPick(snap.Events) + 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	if undone > 0 {
		metrics.RecordUndo(undone)
	}
	s.logger.Info(ctx, "picks undone", logger.Int("requested", n), logger.Int("undone", undone))
	return undone, nil
}

// Reset clears the draft log and every pick while keeping the pool.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}

	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		for i := range snap.Candidates {
			clearPick(&snap.Candidates[i])
		}
		snap.Events = nil
		snap.NextPick = 1
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordReset()
	s.logger.Info(ctx, "draft reset")
	return nil
}

// Board evaluates the current snapshot.
func (s *Service) Board(ctx context.Context) (engine.Board, error) {
	if err := s.ensureStarted(); err != nil {
		return engine.Board{}, err
	}

	start := time.Now()
	board := engine.Evaluate(s.store.Snapshot(ctx), s.cfg, s.myTeam)
	metrics.RecordEvaluateDuration(float64(time.Since(start).Milliseconds()))
	return board, nil
}

// Forecast projects the picks until the advised team's next turn.
func (s *Service) Forecast(ctx context.Context) (forecast.Forecast, error) {
	if err := s.ensureStarted(); err != nil {
		return forecast.Forecast{}, err
	}
	return engine.Project(s.store.Snapshot(ctx), s.cfg, s.myTeam), nil
}

// Snapshot returns a copy of the raw draft state.
func (s *Service) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := s.ensureStarted(); err != nil {
		return model.Snapshot{}, err
	}
	return s.store.Snapshot(ctx), nil
}

// ExportJSON serializes the draft state for backup.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	if err := s.ensureStarted(); err != nil {
		return nil, err
	}
	return s.store.ExportJSON(ctx)
}

// ImportJSON restores a previously exported draft state.
func (s *Service) ImportJSON(ctx context.Context, data []byte) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	if err := s.store.ImportJSON(ctx, data); err != nil {
		return err
	}
	s.logger.Info(ctx, "snapshot imported", logger.Int("bytes", len(data)))
	return nil
}

// SeenAndRecord atomically checks if a feed event id was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordFeedEventDuplicate()
	}
	return seen
}

// Unrecord removes a feed event ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits an external pick for asynchronous application.
func (s *Service) Enqueue(ctx context.Context, e pickqueue.Event) bool {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return false
	}
	return s.queue.Enqueue(ctx, e)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"teams":      s.cfg.Teams,
		"myTeam":     s.myTeam,
		"totalPicks": s.cfg.TotalPicks(),
	}
	if s.started {
		ctx := context.Background()
		snap := s.store.Snapshot(ctx)
		stats["candidates"] = len(snap.Candidates)
		stats["available"] = len(snap.Available())
		stats["eventsRecorded"] = len(snap.Events)
		stats["nextPick"] = snap.NextPick
		stats["queueLength"] = s.queue.Len(ctx)
		stats["dedupeSize"] = s.deduper.Size()
	}
	return stats
}

func (s *Service) ensureStarted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// maxObservedPick returns the highest overall pick in the log, 0 when empty.
func maxObservedPick(events []model.DraftEvent) int {
	max := 0
	for _, e := range events {
		if e.OverallPick > max {
			max = e.OverallPick
		}
	}
	return max
}

func clearPick(c *model.Candidate) {
	c.Drafted = false
	c.Owner = 0
	c.OverallPick = 0
}
