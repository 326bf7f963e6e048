// Command yahoo is the serverless function behind
// /.netlify/functions/yahoo?ticker=<symbol>. Netlify runs Go functions on
// the AWS Lambda runtime, so the handler is registered with lambda.Start.
package main

import (
	"time"

	"github.com/aws/aws-lambda-go/lambda"
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

	// No client timeout: the platform's invocation limit is the only deadline.
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

	h := quote.New(client)
	lambda.Start(h.HandleAPIGateway)
}
