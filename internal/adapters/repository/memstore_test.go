package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/sherrin/internal/adapters/repository"
	"github.com/okian/sherrin/internal/draft/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemoryStore()

		Convey("Then the initial snapshot starts at pick one", func() {
			snap := s.Snapshot(ctx)
			So(snap.Candidates, ShouldBeEmpty)
			So(snap.NextPick, ShouldEqual, 1)
		})

		Convey("When a candidate is committed via Update", func() {
			err := s.Update(ctx, func(snap *model.Snapshot) error {
				snap.Candidates = append(snap.Candidates, model.Candidate{ID: "c1", Name: "One"})
				return nil
			})
			So(err, ShouldBeNil)

			Convey("Then readers see the commit", func() {
				So(s.Snapshot(ctx).Candidates, ShouldHaveLength, 1)
			})

			Convey("Then mutating a read copy does not leak back", func() {
				snap := s.Snapshot(ctx)
				snap.Candidates[0].Name = "mutated"
				So(s.Snapshot(ctx).Candidates[0].Name, ShouldEqual, "One")
			})
		})

		Convey("When the mutator fails", func() {
			boom := errors.New("boom")
			err := s.Update(ctx, func(snap *model.Snapshot) error {
				snap.Candidates = append(snap.Candidates, model.Candidate{ID: "c1"})
				return boom
			})

			Convey("Then nothing is committed", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				So(s.Snapshot(ctx).Candidates, ShouldBeEmpty)
			})
		})

		Convey("When the mutator is nil", func() {
			So(s.Update(ctx, nil), ShouldEqual, repository.ErrNilMutator)
		})
	})

	Convey("Given a seeded store", t, func() {
		seed := model.Snapshot{
			Candidates: []model.Candidate{{ID: "c1", Name: "One"}, {ID: "c2", Name: "Two"}},
			NextPick:   3,
		}
		s := repository.NewMemoryStore(repository.WithInitialSnapshot(seed))

		Convey("Then the seed is cloned in", func() {
			seed.Candidates[0].Name = "mutated"
			So(s.Snapshot(ctx).Candidates[0].Name, ShouldEqual, "One")
			So(s.Snapshot(ctx).NextPick, ShouldEqual, 3)
		})

		Convey("When the state round-trips through JSON", func() {
			data, err := s.ExportJSON(ctx)
			So(err, ShouldBeNil)

			fresh := repository.NewMemoryStore()
			So(fresh.ImportJSON(ctx, data), ShouldBeNil)

			Convey("Then the imported state matches", func() {
				got := fresh.Snapshot(ctx)
				So(got.Candidates, ShouldHaveLength, 2)
				So(got.NextPick, ShouldEqual, 3)
			})
		})

		Convey("When a garbage payload is imported", func() {
			So(s.ImportJSON(ctx, []byte("{nope")), ShouldEqual, repository.ErrBadSnapshot)

			Convey("Then the previous state survives", func() {
				So(s.Snapshot(ctx).Candidates, ShouldHaveLength, 2)
			})
		})

		Convey("When Replace swaps the state", func() {
			So(s.Replace(ctx, model.Snapshot{NextPick: 1}), ShouldBeNil)
			So(s.Snapshot(ctx).Candidates, ShouldBeEmpty)
		})
	})
}
