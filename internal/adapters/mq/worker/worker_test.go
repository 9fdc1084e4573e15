package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/sherrin/internal/adapters/mq/queue"
	worker "github.com/okian/sherrin/internal/adapters/mq/worker"
	model "github.com/okian/sherrin/internal/draft/model"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	eventChan chan queue.Event
}

func newMockQueue() *mockQueue {
	return &mockQueue{eventChan: make(chan queue.Event, 10)}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan queue.Event {
	return mq.eventChan
}

func (mq *mockQueue) addEvent(event queue.Event) {
	mq.eventChan <- event
}

type mockApplier struct {
	mu      sync.Mutex
	applied []string
	errors  map[string]error
}

func newMockApplier() *mockApplier {
	return &mockApplier{errors: make(map[string]error)}
}

func (ma *mockApplier) ApplyExternalPick(_ context.Context, e worker.Event) error {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	if err, ok := ma.errors[e.EventID]; ok {
		return err
	}
	ma.applied = append(ma.applied, e.EventID)
	return nil
}

func (ma *mockApplier) setError(eventID string, err error) {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	ma.errors[eventID] = err
}

func (ma *mockApplier) appliedIDs() []string {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	return append([]string(nil), ma.applied...)
}

func event(id string, pick int) model.DraftEvent {
	return model.DraftEvent{EventID: id, CandidateID: "cand-" + id, Team: 1, OverallPick: pick}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a running applier worker", t, func() {
		mq := newMockQueue()
		applier := newMockApplier()
		w := worker.NewInMemoryWorker(mq, applier, worker.WithName("applier-test"))

		ctx, cancel := context.WithCancel(context.Background())
		go w.Run(ctx)

		convey.Reset(func() {
			cancel()
		})

		convey.Convey("When events arrive on the queue", func() {
			mq.addEvent(event("evt-1", 1))
			mq.addEvent(event("evt-2", 2))

			convey.Convey("Then they apply in arrival order", func() {
				ok := waitFor(func() bool { return len(applier.appliedIDs()) == 2 })
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(applier.appliedIDs(), convey.ShouldResemble, []string{"evt-1", "evt-2"})
			})
		})

		convey.Convey("When one event fails to apply", func() {
			applier.setError("evt-bad", errors.New("apply failed"))
			mq.addEvent(event("evt-bad", 1))
			mq.addEvent(event("evt-good", 2))

			convey.Convey("Then the worker keeps draining", func() {
				ok := waitFor(func() bool { return len(applier.appliedIDs()) == 1 })
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(applier.appliedIDs(), convey.ShouldResemble, []string{"evt-good"})
			})
		})

		convey.Convey("When the worker shuts down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a worker whose queue closes", t, func() {
		mq := newMockQueue()
		applier := newMockApplier()
		w := worker.NewInMemoryWorker(mq, applier)

		done := make(chan struct{})
		go func() {
			w.Run(context.Background())
			close(done)
		}()

		close(mq.eventChan)

		convey.Convey("Then the run loop ends", func() {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("worker did not stop after queue close")
			}
		})
	})
}
