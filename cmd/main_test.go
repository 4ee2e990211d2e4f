package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shiftsync/shiftsync/internal/adapters/http/api"
	"github.com/shiftsync/shiftsync/internal/adapters/http/swagger"
	app "github.com/shiftsync/shiftsync/internal/app"
	"github.com/shiftsync/shiftsync/internal/config"
	"github.com/shiftsync/shiftsync/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	_ = logger.Init(logger.FormatText)

	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SHIFTSYNC_ADDR", ":8081")
			_ = os.Setenv("SHIFTSYNC_QUEUE_SIZE", "1000")
			_ = os.Setenv("SHIFTSYNC_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("SHIFTSYNC_ADDR")
				_ = os.Unsetenv("SHIFTSYNC_QUEUE_SIZE")
				_ = os.Unsetenv("SHIFTSYNC_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When wiring the full HTTP surface", func() {
			ctx := context.Background()
			svc := app.New(app.WithWorkerCount(1))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the documented routes should answer", func() {
				for _, path := range []string{"/healthz", "/stats", "/openapi.yaml", "/api-docs"} {
					req := httptest.NewRequest("GET", path, http.NoBody)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And the server should construct with timeouts", func() {
				srv := &http.Server{
					Addr:              ":0",
					Handler:           mux,
					ReadTimeout:       readTimeout,
					WriteTimeout:      writeTimeout,
					IdleTimeout:       idleTimeout,
					ReadHeaderTimeout: readHeaderTimeout,
				}
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
			})
		})
	})
}
