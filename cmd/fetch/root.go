package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tickerproxy/internal/chart"
	"tickerproxy/internal/config"
	"tickerproxy/internal/httpx"
	"tickerproxy/internal/quote"
)

// newRootCmd builds `fetch <ticker>`. Flags override config; config
// overrides the built-in defaults.
func newRootCmd() *cobra.Command {
	var (
		configPath string
		baseURL    string
		chartRange string
		interval   string
		timeout    time.Duration
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "fetch <ticker>",
		Short:         "Fetch historical chart data for a ticker",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if debug {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if baseURL != "" {
				cfg.Upstream.BaseURL = baseURL
			}
			if chartRange != "" {
				cfg.Upstream.Range = chartRange
			}
			if interval != "" {
				cfg.Upstream.Interval = interval
			}

			client, err := chart.NewClient(
				chart.WithBaseURL(cfg.Upstream.BaseURL),
				chart.WithHTTPClient(httpx.New(timeout)),
				chart.WithUserAgent(cfg.Upstream.UserAgent),
				chart.WithRange(cfg.Upstream.Range),
				chart.WithInterval(cfg.Upstream.Interval),
			)
			if err != nil {
				return err
			}

			res := quote.New(client).Handle(cmd.Context(), args[0])
			fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", res.StatusCode, http.StatusText(res.StatusCode))
			for k, v := range res.Headers {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", k, v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Body)
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d", res.StatusCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.json (optional)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "chart endpoint; the ticker is appended as a path segment")
	cmd.Flags().StringVar(&chartRange, "range", "", "range query parameter (default from config, 100d)")
	cmd.Flags().StringVar(&interval, "interval", "", "interval query parameter (default from config, 1d)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "client timeout; 0 waits indefinitely")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logs")
	return cmd
}
