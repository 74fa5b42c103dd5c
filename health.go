package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type healthServer struct {
	server *http.Server
	logger zerolog.Logger
}

// newHealthServer exposes /health and /metrics. The health check pings the
// RPC endpoint for the latest block number once a minute.
func newHealthServer(listenAddr string, client *ethclient.Client, logger zerolog.Logger) *healthServer {
	checker := health.NewChecker(
		health.WithCacheDuration(1*time.Second),
		health.WithTimeout(10*time.Second),
		// Run every minute with initial delay of 3 seconds. Not run each HTTP request
		health.WithPeriodicCheck(60*time.Second, 3*time.Second, health.Check{
			Name: "eth rpc",
			Check: func(ctx context.Context) error {
				_, err := client.BlockNumber(ctx)
				return err
			},
		}),
		// Runs when health status changes
		health.WithStatusListener(func(ctx context.Context, state health.CheckerState) {
			logger.
				Debug().
				Str("status", string(state.Status)).
				Msg("health status changed")
		}),
	)

	r := chi.NewRouter()
	r.Get("/health", health.NewHandler(checker))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return &healthServer{
		server: &http.Server{
			Addr:    listenAddr,
			Handler: r,
		},
		logger: logger,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *healthServer) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.
		Info().
		Msgf("healthcheck server listening on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		s.logger.Fatal().Err(err).Msg("failed to start healthcheck server")
	}
}
