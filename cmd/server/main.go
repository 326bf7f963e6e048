// Command server runs the chart proxy as a long-lived HTTP server for local
// development, mirroring the paths a Netlify deployment exposes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tickerproxy/internal/chart"
	"tickerproxy/internal/config"
	"tickerproxy/internal/httpx"
	"tickerproxy/internal/quote"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.Server.LogLevel).Msg("invalid log level")
	}
	log.Logger = log.Level(level)

	client, err := chart.NewClient(
		chart.WithBaseURL(cfg.Upstream.BaseURL),
		chart.WithHTTPClient(httpx.New(0)),
		chart.WithUserAgent(cfg.Upstream.UserAgent),
		chart.WithRange(cfg.Upstream.Range),
		chart.WithInterval(cfg.Upstream.Interval),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct chart client")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           recoverPanic(newMux(quote.New(client))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("upstream", cfg.Upstream.BaseURL).
			Msg("server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newMux routes the Netlify function path and a shorter alias to h.
func newMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/.netlify/functions/yahoo", h)
	mux.Handle("/api/chart", h)
	return mux
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
