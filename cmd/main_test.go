package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/okian/sherrin/internal/adapters/http/api"
	app "github.com/okian/sherrin/internal/app"
	"github.com/okian/sherrin/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SHERRIN_ADDR", ":8080")
			_ = os.Setenv("SHERRIN_MY_TEAM", "4")
			_ = os.Setenv("SHERRIN_QUEUE_SIZE", "1000")
			defer func() {
				_ = os.Unsetenv("SHERRIN_ADDR")
				_ = os.Unsetenv("SHERRIN_MY_TEAM")
				_ = os.Unsetenv("SHERRIN_QUEUE_SIZE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MyTeam, convey.ShouldEqual, 4)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When wiring the service behind the HTTP mux", func() {
			ctx := context.Background()
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			svc := app.New(
				app.WithRoster(cfg.Roster()),
				app.WithMyTeam(cfg.MyTeam),
				app.WithQueueSize(cfg.QueueSize),
				app.WithDedupeSize(cfg.DedupeSize),
			)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			api.NewServer(svc, svc).Register(ctx, mux)
			srv := httptest.NewServer(mux)
			defer srv.Close()

			convey.Convey("Then the health endpoint answers", func() {
				resp, err := http.Get(srv.URL + "/healthz")
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then the stats endpoint answers", func() {
				resp, err := http.Get(srv.URL + "/stats")
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}
