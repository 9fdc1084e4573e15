// Package feed polls an external draft feed for picks made by other teams.
//
// The poller is intentionally dumb: it fetches the feed, drops picks it has
// already seen and hands the rest to the queue. Ordering and state belong
// to the applier worker downstream.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/sherrin/internal/adapters/mq/queue"
	"github.com/okian/sherrin/internal/draft/dedupe"
	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/pkg/logger"
	"github.com/okian/sherrin/pkg/metrics"
)

// Default poller configuration constants.
const (
	defaultInterval    = 2 * time.Second
	defaultHTTPTimeout = 5 * time.Second
)

// pick is the wire shape of one feed entry.
type pick struct {
	EventID     string    `json:"event_id"`
	CandidateID string    `json:"candidate_id"`
	PlayerID    string    `json:"player_id"` // legacy feed field, same meaning
	Team        int       `json:"team"`
	OverallPick int       `json:"overall_pick"`
	TS          time.Time `json:"ts"`
}

// payload is the wire shape of the feed response.
type payload struct {
	Picks []pick `json:"picks"`
}

// Enqueuer is the downstream the poller feeds into.
type Enqueuer interface {
	Enqueue(ctx context.Context, e queue.Event) bool
}

// Poller periodically fetches the feed URL and enqueues unseen picks.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	queue    Enqueuer
	deduper  dedupe.Deduper

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewPoller creates a feed poller with configuration options.
func NewPoller(url string, q Enqueuer, d dedupe.Deduper, opts ...Option) *Poller {
	p := &Poller{
		url:      url,
		interval: defaultInterval,
		client:   &http.Client{Timeout: defaultHTTPTimeout},
		queue:    q,
		deduper:  d,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("feed"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is canceled or Shutdown is called.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			if err := p.pollOnce(ctx); err != nil {
				metrics.RecordFeedPollError()
				p.logger.Warn(ctx, "feed poll failed", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the poll loop.
func (p *Poller) Shutdown(ctx context.Context) error {
	close(p.shutdown)
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// pollOnce fetches the feed and enqueues every unseen pick.
func (p *Poller) pollOnce(ctx context.Context) error {
	metrics.RecordFeedPoll()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("building feed request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding feed payload: %w", err)
	}

	for _, pk := range body.Picks {
		e, err := toEvent(pk)
		if err != nil {
			p.logger.Warn(ctx, "skipping malformed feed pick", logger.Error(err))
			continue
		}
		if p.deduper.SeenAndRecord(ctx, e.EventID) {
			metrics.RecordFeedEventDuplicate()
			continue
		}
		if !p.queue.Enqueue(ctx, e) {
			// Let a later poll retry this event.
			p.deduper.Unrecord(ctx, e.EventID)
			p.logger.Warn(ctx, "pick queue refused feed event",
				logger.String("eventID", e.EventID))
			continue
		}
		metrics.RecordFeedEventApplied()
	}
	return nil
}

// toEvent normalizes a wire pick into a draft event. Feeds disagree on the
// candidate field name; either spelling is accepted.
func toEvent(pk pick) (model.DraftEvent, error) {
	id := pk.CandidateID
	if id == "" {
		id = pk.PlayerID
	}
	if id == "" {
		return model.DraftEvent{}, ErrNoCandidate
	}
	if pk.Team < 1 {
		return model.DraftEvent{}, ErrNoTeam
	}

	eventID := pk.EventID
	if eventID == "" {
		// Stable synthetic ID so replays of the same feed row dedupe.
		eventID = fmt.Sprintf("feed-%s-%d", id, pk.OverallPick)
	}
	return model.DraftEvent{
		EventID:     eventID,
		CandidateID: id,
		Team:        pk.Team,
		OverallPick: pk.OverallPick,
		TS:          pk.TS,
	}, nil
}
