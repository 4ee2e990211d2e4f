package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shiftsync/shiftsync/internal/adapters/ai/gemini"
	"github.com/shiftsync/shiftsync/internal/adapters/http/api"
	"github.com/shiftsync/shiftsync/internal/adapters/http/swagger"
	"github.com/shiftsync/shiftsync/internal/adapters/payments"
	"github.com/shiftsync/shiftsync/internal/adapters/repository"
	app "github.com/shiftsync/shiftsync/internal/app"
	"github.com/shiftsync/shiftsync/internal/config"
	"github.com/shiftsync/shiftsync/internal/domain/dedupe"
	"github.com/shiftsync/shiftsync/pkg/logger"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second

	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection; the custom registry carries
	// its own system metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	logFormat := logger.FormatText
	if cfg.LogFormat == "json" {
		logFormat = logger.FormatJSON
	}
	if err := logger.Init(logFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithMaxAutofillCount(cfg.MaxAutofillCount),
		app.WithMaxListLimit(cfg.MaxListLimit),
		app.WithPaymentSimulator(payments.NewSimulator(
			payments.WithLatencyRange(
				time.Duration(cfg.PaymentLatencyMinMS)*time.Millisecond,
				time.Duration(cfg.PaymentLatencyMaxMS)*time.Millisecond,
			),
			payments.WithKeyStore(dedupe.NewInMemoryKeyStore(dedupe.WithMaxSize(cfg.DedupeSize))),
		)),
	}

	// Postgres when a DSN is configured; in-memory otherwise.
	if cfg.DatabaseURL != "" {
		store, err := repository.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "failed to connect to postgres", logger.Error(err))
			return
		}
		log.Info(ctx, "using postgres store")
		opts = append(opts, app.WithStore(store))
	}

	// AI descriptions are optional; the endpoint answers 503 without a key.
	if cfg.GeminiAPIKey != "" {
		gen, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error(ctx, "failed to initialize gemini client", logger.Error(err))
			return
		}
		opts = append(opts, app.WithDescriber(&geminiDescriber{gen: gen}))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// geminiDescriber adapts the gemini client to the service's Describer.
type geminiDescriber struct {
	gen *gemini.Generator
}

func (d *geminiDescriber) DescribeShift(ctx context.Context, req app.DescribeRequest) (string, error) {
	return d.gen.DescribeShift(ctx, gemini.DescribeRequest{
		RoleType:   req.RoleType,
		Location:   req.Location,
		HourlyRate: req.HourlyRate,
	})
}

// startSystemMetricsUpdater refreshes runtime metrics on an interval.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges on an interval.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats pushes the row-count and queue gauges as a side
			// effect.
			_ = svc.GetStats()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
