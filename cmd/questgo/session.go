package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/metrics"
	"github.com/wippyai/quest-go/quest"
)

const shutdownTimeout = 5 * time.Second

// session is the environment a subcommand runs against, plus the metrics
// endpoint when enabled.
type session struct {
	env    *quest.Env
	server *http.Server
}

func openSession() (*session, error) {
	policy, ok := quest.ParsePolicy(cfg.Engine.OutstandingPolicy)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("unknown outstanding policy %q", cfg.Engine.OutstandingPolicy))
	}

	opts := []quest.Option{
		quest.WithLogger(logger.Named("quest")),
		quest.WithOutstandingPolicy(policy),
	}
	if len(cfg.Engine.Seeds) > 0 {
		opts = append(opts, quest.WithSeeds(cfg.Engine.Seeds...))
	}

	s := &session{}
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(cfg.Metrics, prometheus.NewRegistry())
		opts = append(opts, quest.WithMetrics(collector))

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		s.server = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("serving metrics",
			zap.String("address", cfg.Metrics.Address),
			zap.String("path", cfg.Metrics.Path))
	}

	env, err := quest.NewEnv(opts...)
	if err != nil {
		s.stopServer()
		return nil, err
	}
	s.env = env
	return s, nil
}

// Close finalizes the environment and stops the metrics endpoint.
func (s *session) Close() error {
	err := s.env.Close()
	s.stopServer()
	return err
}

func (s *session) stopServer() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", zap.Error(err))
	}
}

// checkQubits enforces the configured register size cap. A density
// register of n qubits costs as much as a state vector of 2n.
func checkQubits(n int, density bool) error {
	limit := cfg.Engine.MaxQubits
	if density {
		limit /= 2
	}
	if n > limit {
		return errors.New(errors.PhaseAlloc, errors.KindInvalidInput).
			Op("cli").
			Value(n).
			Detail("%d qubits exceeds the configured limit of %d", n, limit).
			Build()
	}
	return nil
}

// newRegister allocates a register after checking the configured cap.
func (s *session) newRegister(n int, density bool) (*quest.Register, error) {
	if err := checkQubits(n, density); err != nil {
		return nil, err
	}
	if density {
		return quest.NewDensityRegister(s.env, n)
	}
	return quest.NewRegister(s.env, n)
}

// withSession opens a session, runs fn and closes everything, returning the
// first error.
func withSession(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	runErr := fn(s)
	closeErr := s.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
