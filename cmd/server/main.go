package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"atelier/internal/platform/config"
	"atelier/internal/platform/health"
	"atelier/internal/platform/httpserver"
	"atelier/internal/platform/logger"
	"atelier/internal/tracking/geo"
	trackinghandler "atelier/internal/tracking/handler"
	trackingmetrics "atelier/internal/tracking/metrics"
	"atelier/internal/tracking/service"
	"atelier/internal/tracking/store"
	"atelier/pkg/platform/circuit"
	"atelier/pkg/platform/middleware/metadata"
	"atelier/pkg/platform/middleware/request"
	"atelier/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	trustedProxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	breaker := circuit.New("ip-lookup",
		circuit.WithFailureThreshold(cfg.IPLookup.BreakerThreshold),
		circuit.WithCooldown(cfg.IPLookup.BreakerCooldown),
	)
	ipClient := geo.NewIPAPIClient(cfg.IPLookup.URL,
		geo.WithTimeout(cfg.IPLookup.Timeout),
		geo.WithBreaker(breaker),
	)

	trackingSvc := service.NewService(store.New(), ipClient, log,
		service.WithMetrics(trackingmetrics.New()),
		service.WithActivityLimit(cfg.ActivityLimit),
	)

	healthHandler := health.New(string(cfg.Environment))
	healthHandler.RegisterAdvisory("ip_lookup", func(context.Context) error {
		if breaker.State() == circuit.StateOpen {
			return geo.ErrCircuitOpen
		}
		return nil
	})

	router := chi.NewRouter()
	router.Use(request.Recovery(log))
	router.Use(request.RequestID)
	router.Use(metadata.NewMiddleware(&metadata.Config{TrustedProxies: trustedProxies}).Handler)
	router.Use(requesttime.Middleware)
	router.Use(request.Logger(log))
	router.Use(request.LatencyMiddleware(request.NewMetrics(prometheus.DefaultRegisterer)))
	router.Use(request.Timeout(cfg.RequestTimeout))
	router.Use(request.ContentTypeJSON)

	healthHandler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	trackinghandler.New(trackingSvc, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting atelier tracking service",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"ip_lookup_url", cfg.IPLookup.URL,
		"activity_limit", cfg.ActivityLimit,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		trackingSvc.Wait()
		return err
	})
	return g.Wait()
}
