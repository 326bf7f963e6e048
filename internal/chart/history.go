package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// StatusError is returned when the chart endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	// StatusText is the reason phrase only, e.g. "Not Found".
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d %s", e.StatusCode, e.StatusText)
}

// URL returns the upstream URL for ticker. The ticker is substituted as is:
// a "/" adds path segments and a "?" starts the query, exactly as in a
// string-templated URL.
func (c *Client) URL(ticker string) string {
	return fmt.Sprintf("%s/%s?range=%s&interval=%s",
		strings.TrimRight(c.baseURL, "/"),
		escapeTicker(ticker),
		url.QueryEscape(c.chartRange),
		url.QueryEscape(c.interval),
	)
}

// History performs a single GET for ticker and returns the decoded JSON
// document. The payload is opaque: numbers are kept as json.Number so that
// re-encoding reproduces them exactly.
func (c *Client) History(ctx context.Context, ticker string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(ticker), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{StatusCode: res.StatusCode, StatusText: statusText(res)}
	}

	var payload any
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding chart response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding chart response: unexpected data after top-level value")
	}
	return payload, nil
}

// escapeTicker percent-encodes the bytes a URL cannot carry verbatim:
// controls, space, non-ASCII, the quote, angle brackets, backtick and
// braces, "#" (which would drop the query as a fragment) and any "%" that
// does not start a valid escape. Everything else passes through, the way a
// browser treats a path.
func escapeTicker(ticker string) string {
	var b strings.Builder
	for i := 0; i < len(ticker); i++ {
		c := ticker[i]
		switch {
		case c == '%' && i+2 < len(ticker) && isHex(ticker[i+1]) && isHex(ticker[i+2]):
			b.WriteByte(c)
		case c <= 0x20 || c >= 0x7f || strings.IndexByte("\"#%<>`{}", c) >= 0:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// statusText strips the numeric code from res.Status. Servers that omit the
// reason phrase get the canonical text for the code.
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}
