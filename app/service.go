// Package app assembles the planner service from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/kilianp07/powerplan/api"
	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/dispatch/logging"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	coremon "github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/core/publisher"
	_ "github.com/kilianp07/powerplan/infra/kafka"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/infra/metrics"
	"github.com/kilianp07/powerplan/infra/monitoring"
	_ "github.com/kilianp07/powerplan/infra/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Service serves production plans over HTTP.
type Service struct {
	Manager *dispatch.PlanManager
	Store   logging.LogStore

	cfg       *config.Config
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	handler   http.Handler
	log       logger.Logger
	publisher publisher.Publisher
	accessLog io.Writer
}

// Option customises a Service built by New.
type Option func(*Service)

// WithPublisher replaces the configured plan publishers.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithAccessLog sets where HTTP access logs are written. Defaults to stdout.
func WithAccessLog(w io.Writer) Option {
	return func(s *Service) { s.accessLog = w }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	svc := &Service{cfg: cfg, log: logger.New("service"), accessLog: os.Stdout}
	for _, o := range opts {
		o(svc)
	}

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc.sink = sink

	d, err := dispatch.NewDispatcher(cfg.Components.Dispatcher)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}

	if svc.publisher == nil {
		svc.publisher, err = publisher.NewPublisher(cfg.Components.Publishers)
		if err != nil {
			return nil, fmt.Errorf("publisher: %w", err)
		}
	}

	if cfg.Logging.Enabled() {
		svc.Store, err = logging.NewLogStore(cfg.Logging.Module())
		if err != nil {
			_ = svc.publisher.Close()
			return nil, fmt.Errorf("log store: %w", err)
		}
	}

	svc.bus = eventbus.New()
	mgr, err := dispatch.NewPlanManager(d, sink, svc.bus, logger.New("plan-manager"))
	if err != nil {
		return nil, fmt.Errorf("plan manager: %w", err)
	}
	mgr.SetEmissionFactor(cfg.Dispatch.EmissionFactor)
	mgr.SetPublisher(svc.publisher)
	if svc.Store != nil {
		mgr.SetLogStore(svc.Store)
	}
	if cfg.Dispatch.LPFirst {
		mgr.SetLPDispatcher(dispatch.NewLPDispatcher(cfg.Dispatch))
		mgr.SetLPFirst(true)
	}
	svc.Manager = mgr

	svc.handler = api.NewHandler(api.Deps{
		Planner:   mgr,
		Store:     svc.Store,
		LogsToken: cfg.Server.LogsToken,
		Logger:    logger.New("api"),
	}, svc.accessLog)
	return svc, nil
}

// Handler returns the HTTP handler of the service.
func (s *Service) Handler() http.Handler { return s.handler }

// Run starts the HTTP API, the Prometheus endpoint and the event collector.
// It blocks until the context is cancelled or the API server fails.
func (s *Service) Run(ctx context.Context) error {
	defer coremon.Recover()
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Manager.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return err
}
