package service_test

import (
	"context"
	"testing"
	"time"

	queue "github.com/okian/sherrin/internal/adapters/mq/queue"
	service "github.com/okian/sherrin/internal/app"
	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func pool() []model.Candidate {
	mk := func(id, name, pos string, projected float64, bye int) model.Candidate {
		return model.Candidate{
			ID:        id,
			Name:      name,
			Positions: model.ParsePositions(pos),
			Projected: projected,
			ByeRound:  bye,
		}
	}
	return []model.Candidate{
		mk("c1", "Alpha", "MID", 120, 12),
		mk("c2", "Bravo", "MID", 110, 13),
		mk("c3", "Charlie", "DEF", 95, 14),
		mk("c4", "Delta", "RUC", 105, 12),
		mk("c5", "Echo", "FWD/MID", 92, 15),
	}
}

func startedService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	s := service.New(opts...)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unstarted service", t, func() {
		s := service.New()

		Convey("Then operations refuse to run", func() {
			So(s.Draft(ctx, "c1", 1, 0), ShouldEqual, service.ErrNotStarted)
			_, err := s.Board(ctx)
			So(err, ShouldEqual, service.ErrNotStarted)
		})
	})

	Convey("Given a started service", t, func() {
		s := startedService(t)

		Convey("Then a second start is a no-op", func() {
			So(s.Start(ctx), ShouldBeNil)
		})

		Convey("Then stats report the league shape", func() {
			stats := s.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["teams"], ShouldEqual, 6)
			So(stats["totalPicks"], ShouldEqual, 156)
		})
	})

	Convey("Given an invalid roster configuration", t, func() {
		cfg := roster.Default()
		cfg.Teams = 0
		s := service.New(service.WithRoster(cfg))

		Convey("Then start fails", func() {
			So(s.Start(ctx), ShouldNotBeNil)
		})
	})
}

func TestDraftOperations(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a loaded pool", t, func() {
		s := startedService(t)
		So(s.LoadCandidates(ctx, pool()), ShouldBeNil)

		Convey("When a pick is recorded without an explicit pick number", func() {
			So(s.Draft(ctx, "c1", 2, 0), ShouldBeNil)
			snap, err := s.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the sequence assigns pick one", func() {
				So(snap.NextPick, ShouldEqual, 2)
				So(snap.Events, ShouldHaveLength, 1)
				So(snap.Events[0].OverallPick, ShouldEqual, 1)
				So(snap.Events[0].Round, ShouldEqual, 1)
				So(snap.Events[0].PickInRound, ShouldEqual, 1)
				So(snap.Events[0].EventID, ShouldNotBeEmpty)
			})

			Convey("Then the candidate belongs to the team", func() {
				idx := snap.CandidateByID()["c1"]
				So(snap.Candidates[idx].Drafted, ShouldBeTrue)
				So(snap.Candidates[idx].Owner, ShouldEqual, 2)
			})
		})

		Convey("When a pick lands on an explicit later pick", func() {
			So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)
			So(s.Draft(ctx, "c2", 3, 7), ShouldBeNil)
			snap, _ := s.Snapshot(ctx)

			Convey("Then the sequence jumps past it", func() {
				So(snap.NextPick, ShouldEqual, 8)
				So(snap.Events[1].Round, ShouldEqual, 2)
				So(snap.Events[1].PickInRound, ShouldEqual, 1)
			})
		})

		Convey("Then invalid picks are rejected", func() {
			So(s.Draft(ctx, "ghost", 1, 0), ShouldWrap, service.ErrUnknownCandidate)
			So(s.Draft(ctx, "c1", 0, 0), ShouldWrap, service.ErrBadTeam)
			So(s.Draft(ctx, "c1", 7, 0), ShouldWrap, service.ErrBadTeam)

			So(s.Draft(ctx, "c1", 1, 5), ShouldBeNil)
			So(s.Draft(ctx, "c2", 2, 3), ShouldWrap, service.ErrPickInPast)
			So(s.Draft(ctx, "c1", 2, 0), ShouldEqual, service.ErrAlreadyDrafted)
		})

		Convey("When a mid-log pick is reversed", func() {
			So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)
			So(s.Draft(ctx, "c2", 2, 0), ShouldBeNil)
			So(s.Draft(ctx, "c3", 3, 0), ShouldBeNil)
			So(s.Undraft(ctx, "c2"), ShouldBeNil)
			snap, _ := s.Snapshot(ctx)

			Convey("Then its event disappears and later picks survive", func() {
				So(snap.Events, ShouldHaveLength, 2)
				So(snap.NextPick, ShouldEqual, 4)
				idx := snap.CandidateByID()["c2"]
				So(snap.Candidates[idx].Drafted, ShouldBeFalse)
			})
		})

		Convey("Then reversing an undrafted candidate fails", func() {
			So(s.Undraft(ctx, "c1"), ShouldWrap, service.ErrNotDrafted)
		})

		Convey("When more picks are undone than exist", func() {
			So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)
			So(s.Draft(ctx, "c2", 2, 0), ShouldBeNil)
			undone, err := s.UndoLastN(ctx, 5)

			Convey("Then the undo stops at the log head", func() {
				So(err, ShouldBeNil)
				So(undone, ShouldEqual, 2)
				snap, _ := s.Snapshot(ctx)
				So(snap.Events, ShouldBeEmpty)
				So(snap.NextPick, ShouldEqual, 1)
			})
		})

		Convey("Then a non-positive undo count fails", func() {
			_, err := s.UndoLastN(ctx, 0)
			So(err, ShouldEqual, service.ErrBadUndoCount)
		})

		Convey("When the draft is reset", func() {
			So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)
			So(s.Reset(ctx), ShouldBeNil)
			snap, _ := s.Snapshot(ctx)

			Convey("Then picks clear but the pool stays", func() {
				So(snap.Candidates, ShouldHaveLength, 5)
				So(snap.Events, ShouldBeEmpty)
				So(snap.NextPick, ShouldEqual, 1)
				So(len(snap.Available()), ShouldEqual, 5)
			})
		})

		Convey("Then an empty pool reload is rejected", func() {
			So(s.LoadCandidates(ctx, nil), ShouldEqual, service.ErrEmptyPool)
		})
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with recorded picks", t, func() {
		s := startedService(t)
		So(s.LoadCandidates(ctx, pool()), ShouldBeNil)
		So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)
		So(s.Draft(ctx, "c4", 2, 0), ShouldBeNil)

		Convey("When the state round-trips through export and import", func() {
			data, err := s.ExportJSON(ctx)
			So(err, ShouldBeNil)

			other := startedService(t)
			So(other.ImportJSON(ctx, data), ShouldBeNil)
			snap, _ := other.Snapshot(ctx)

			Convey("Then the restored draft matches", func() {
				So(snap.Candidates, ShouldHaveLength, 5)
				So(snap.Events, ShouldHaveLength, 2)
				So(snap.NextPick, ShouldEqual, 3)
			})
		})
	})
}

func TestBoardAndForecast(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service advising team 4", t, func() {
		s := startedService(t, service.WithMyTeam(4))
		So(s.LoadCandidates(ctx, pool()), ShouldBeNil)
		So(s.Draft(ctx, "c1", 1, 0), ShouldBeNil)

		Convey("Then the board reflects the draft", func() {
			board, err := s.Board(ctx)
			So(err, ShouldBeNil)
			So(board.Metrics, ShouldHaveLength, 5)
			So(board.CurrentPick, ShouldEqual, 2)
			So(board.Metrics[len(board.Metrics)-1].CandidateID, ShouldEqual, "c1")
		})

		Convey("Then the forecast finds the next turn", func() {
			f, err := s.Forecast(ctx)
			So(err, ShouldBeNil)
			So(f.MyNextOverallPick, ShouldEqual, 4)
			So(f.PicksUntilMyTurn, ShouldEqual, 2)
		})
	})
}

func TestExternalPickPipeline(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service fed by external picks", t, func() {
		s := startedService(t)
		So(s.LoadCandidates(ctx, pool()), ShouldBeNil)

		Convey("When the same pick applies twice", func() {
			e := model.DraftEvent{EventID: "ext-1", CandidateID: "c3", Team: 5, OverallPick: 1, TS: time.Now()}
			So(s.ApplyExternalPick(ctx, e), ShouldBeNil)

			Convey("Then the re-delivery is a quiet no-op", func() {
				So(s.ApplyExternalPick(ctx, e), ShouldBeNil)
				snap, _ := s.Snapshot(ctx)
				So(snap.Events, ShouldHaveLength, 1)
			})
		})

		Convey("When a pick arrives through the queue", func() {
			ok := s.Enqueue(ctx, queue.Event{EventID: "ext-2", CandidateID: "c2", Team: 3, OverallPick: 1})
			So(ok, ShouldBeTrue)

			Convey("Then the applier drafts the candidate", func() {
				deadline := time.Now().Add(time.Second)
				drafted := false
				for time.Now().Before(deadline) && !drafted {
					snap, _ := s.Snapshot(ctx)
					idx := snap.CandidateByID()["c2"]
					drafted = snap.Candidates[idx].Drafted
					if !drafted {
						time.Sleep(5 * time.Millisecond)
					}
				}
				So(drafted, ShouldBeTrue)
			})
		})

		Convey("Then feed dedupe is exposed for the poller", func() {
			So(s.SeenAndRecord(ctx, "feed-1"), ShouldBeFalse)
			So(s.SeenAndRecord(ctx, "feed-1"), ShouldBeTrue)
			s.Unrecord(ctx, "feed-1")
			So(s.SeenAndRecord(ctx, "feed-1"), ShouldBeFalse)
		})
	})
}
