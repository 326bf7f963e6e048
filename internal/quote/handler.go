// Package quote serves historical chart data for a ticker to browsers. It
// asks a Fetcher for the upstream document and maps every outcome onto a
// status, headers and body triple; nothing escapes as an unhandled error.
package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tickerproxy/internal/chart"
)

// tickerRequiredMessage is the client-facing text for a missing ticker.
const tickerRequiredMessage = "Ticker is required"

// ErrTickerRequired reports a request without a ticker query parameter.
var ErrTickerRequired = errors.New("ticker is required")

// Fetcher retrieves the chart document for a ticker.
//
//go:generate mockgen -package=quote_test -destination=mock_fetcher_test.go -source=handler.go Fetcher
type Fetcher interface {
	History(ctx context.Context, ticker string) (any, error)
}

// Response is what a single invocation returns to the caller.
type Response struct {
	StatusCode int
	// Headers is nil on every path except success.
	Headers map[string]string
	Body    string
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler proxies chart lookups. It holds no mutable state and may serve
// concurrent invocations.
type Handler struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a Handler backed by fetcher.
func New(fetcher Fetcher, opts ...Option) *Handler {
	h := &Handler{
		fetcher: fetcher,
		logger:  log.With().Str("component", "quote").Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle runs one lookup for ticker.
//
//   - empty ticker: 400, {"error":"Ticker is required"}
//   - upstream non-2xx: upstream status, its reason phrase as plain text
//   - success: 200, Access-Control-Allow-Origin: *, the re-encoded document
//   - anything else: 500, {"error":"<message>"}
//
// Only the success path carries the CORS header.
func (h *Handler) Handle(ctx context.Context, ticker string) Response {
	start := time.Now()
	res := h.handle(ctx, ticker)
	h.logger.Debug().
		Str("ticker", ticker).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("chart request served")
	return res
}

func (h *Handler) handle(ctx context.Context, ticker string) Response {
	if ticker == "" {
		return h.failure(ticker, ErrTickerRequired)
	}

	payload, err := h.fetcher.History(ctx, ticker)
	if err != nil {
		return h.failure(ticker, err)
	}

	body, err := encodeJSON(payload)
	if err != nil {
		return h.failure(ticker, err)
	}
	return Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Access-Control-Allow-Origin": "*"},
		Body:       body,
	}
}

// failure maps err onto a response.
func (h *Handler) failure(ticker string, err error) Response {
	if errors.Is(err, ErrTickerRequired) {
		return errorResponse(http.StatusBadRequest, tickerRequiredMessage)
	}

	var statusErr *chart.StatusError
	if errors.As(err, &statusErr) {
		h.logger.Warn().
			Str("ticker", ticker).
			Int("status", statusErr.StatusCode).
			Msg("upstream rejected chart request")
		return Response{StatusCode: statusErr.StatusCode, Body: statusErr.StatusText}
	}

	h.logger.Warn().Err(err).Str("ticker", ticker).Msg("chart request failed")
	return errorResponse(http.StatusInternalServerError, err.Error())
}

func errorResponse(status int, message string) Response {
	body, err := encodeJSON(errorBody{Error: message})
	if err != nil {
		// errorBody only holds a string.
		panic(err)
	}
	return Response{StatusCode: status, Body: body}
}

// encodeJSON marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
