// Package dedupe defines the interface for feed-event idempotency tracking.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the seen-set when no option overrides it.
const defaultMaxSize = 50000

// Deduper records seen event IDs so an externally fed pick applies at most
// once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen list, allowing a retry after an
	// event was recorded but failed to apply.
	Unrecord(ctx context.Context, id string)

	Size() int
}

// inMemoryDeduper implements Deduper with a map plus an insertion-order ring
// for FIFO eviction once maxSize is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	head    int
	maxSize int
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets the maximum number of IDs to keep in memory.
// maxSize <= 0 disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}

// NewInMemoryDeduper creates a new in-memory deduper with options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		// Evict the oldest surviving entry.
		for d.head < len(d.order) {
			oldest := d.order[d.head]
			d.head++
			if _, ok := d.seen[oldest]; ok {
				delete(d.seen, oldest)
				break
			}
		}
	}

	d.seen[id] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, id)
		// Compact once the consumed prefix dominates the slice.
		if d.head > d.maxSize {
			d.order = append([]string(nil), d.order[d.head:]...)
			d.head = 0
		}
	}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
