package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/kilianp07/nhltiers/api/players"
	"github.com/kilianp07/nhltiers/config"
	corehistory "github.com/kilianp07/nhltiers/core/history"
	coremetrics "github.com/kilianp07/nhltiers/core/metrics"
	coremon "github.com/kilianp07/nhltiers/core/monitoring"
	"github.com/kilianp07/nhltiers/core/prediction"
	"github.com/kilianp07/nhltiers/core/roster"
	_ "github.com/kilianp07/nhltiers/infra/history"
	"github.com/kilianp07/nhltiers/infra/logger"
	"github.com/kilianp07/nhltiers/infra/metrics"
	"github.com/kilianp07/nhltiers/infra/monitoring"
)

// Service wires the roster, the prediction engine, its history and the HTTP API.
type Service struct {
	Directory *roster.Directory
	History   *corehistory.Store
	Engine    *prediction.Engine
	Sink      coremetrics.PredictionSink

	log      logger.Logger
	server   *http.Server
	promAddr string
}

// New creates a Service from the configuration and loads the persisted
// prediction history.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	list, err := roster.Load(cfg.Roster.Path)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	if cfg.Roster.MockSalaries {
		seed := cfg.Roster.SalarySeed
		if seed == 0 {
			seed = rand.Uint64()
		}
		roster.AssignMockSalaries(list, rand.New(rand.NewPCG(seed, seed)))
	}
	dir := roster.NewDirectory(list)
	logg.Infof("loaded %d players", dir.Len())

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	backend, err := corehistory.NewBackend(cfg.History)
	if err != nil {
		closeSink(sink)
		return nil, fmt.Errorf("history backend: %w", err)
	}
	var rec coremetrics.HistorySaveRecorder
	if r, ok := sink.(coremetrics.HistorySaveRecorder); ok {
		rec = r
	}
	store := corehistory.NewStore(backend, logger.New("history"), rec)
	store.Load(ctx)

	engine := prediction.NewEngine(store, sink, logger.New("prediction"))
	handler := players.NewHandler(dir, engine, store, logger.New("api"))

	return &Service{
		Directory: dir,
		History:   store,
		Engine:    engine,
		Sink:      sink,
		log:       logg,
		server: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           players.NewRouter(handler),
			ReadHeaderTimeout: 5 * time.Second,
		},
		promAddr: cfg.Metrics.PrometheusAddr,
	}, nil
}

// Handler returns the HTTP handler of the player API.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("player API listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	return s.server.Shutdown(shutdownCtx)
}

// Close releases the history backend and the metrics sinks.
func (s *Service) Close() error {
	closeSink(s.Sink)
	err := s.History.Close()
	coremon.Flush(2 * time.Second)
	_ = logger.Close()
	return err
}

func closeSink(sink coremetrics.PredictionSink) {
	if m, ok := sink.(*coremetrics.MultiSink); ok {
		for _, child := range m.Sinks {
			closeSink(child)
		}
		return
	}
	if c, ok := sink.(interface{ Close() }); ok {
		c.Close()
	}
}
