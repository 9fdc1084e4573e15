// Package worker defines the applier contract for externally fed picks.
//
// A single worker drains the pick queue and applies events one at a time,
// which keeps external picks serialized in arrival order without locking in
// the draft service itself.
package worker

import (
	"context"
	"fmt"

	"github.com/okian/sherrin/internal/adapters/mq/queue"
	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/pkg/logger"
	"github.com/okian/sherrin/pkg/metrics"
)

// Event abstracts what the worker reads off the queue.
type Event = model.DraftEvent

// Applier applies one externally observed pick to the draft state.
type Applier interface {
	ApplyExternalPick(ctx context.Context, e Event) error
}

// Queue defines how the worker receives events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Event
}

// Worker processes external pick events using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker. Any event already dequeued is
	// applied before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for applying pick events.
type InMemoryWorker struct {
	queue   Queue
	applier Applier
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, applier Applier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		applier:  applier,
		name:     "applier",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("applier"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "applier" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	eventChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error applying external pick", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent applies a single pick event.
func (w *InMemoryWorker) processEvent(ctx context.Context, event queue.Event) error {
	if err := w.applier.ApplyExternalPick(ctx, event); err != nil {
		metrics.RecordErrorByComponent("applier", "apply_error")
		w.logger.Error(ctx, "pick apply failed",
			logger.String("eventID", event.EventID),
			logger.String("candidateID", event.CandidateID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to apply pick %s: %w", event.EventID, err)
	}
	return nil
}
