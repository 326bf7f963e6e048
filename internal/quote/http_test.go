package quote_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name       string
		status     int
		response   string
		target     string
		wantStatus int
		wantBody   string
		wantCORS   bool
	}{
		{
			name:       "success",
			status:     http.StatusOK,
			response:   `{"chart":{"result":[]}}`,
			target:     "/.netlify/functions/yahoo?ticker=MSFT",
			wantStatus: http.StatusOK,
			wantBody:   `{"chart":{"result":[]}}`,
			wantCORS:   true,
		},
		{
			name:       "missing ticker",
			status:     http.StatusOK,
			response:   `{}`,
			target:     "/.netlify/functions/yahoo",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Ticker is required"}`,
		},
		{
			name:       "upstream error",
			status:     http.StatusUnauthorized,
			response:   `{"finance":{"error":{"code":"Unauthorized"}}}`,
			target:     "/.netlify/functions/yahoo?ticker=MSFT",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			up := newUpstream(t, tc.status, tc.response)
			h := newProxy(t, up.URL)
			rr := httptest.NewRecorder()

			// Act
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))

			// Assert
			require.Equal(t, tc.wantStatus, rr.Code)
			require.Equal(t, tc.wantBody, rr.Body.String())
			if tc.wantCORS {
				require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				require.Empty(t, rr.Header().Values("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestServeHTTP_NoSniffedContentType(t *testing.T) {
	t.Parallel()

	for target, status := range map[string]int{
		"/?ticker=MSFT": http.StatusOK,
		"/?ticker=NOPE": http.StatusNotFound,
		"/":             http.StatusOK,
	} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()

			// Arrange: a real server in front of the handler, so net/http's
			// own header defaults apply
			up := newUpstream(t, status, `{"chart":{"result":[]}}`)
			srv := httptest.NewServer(newProxy(t, up.URL))
			t.Cleanup(srv.Close)

			// Act
			res, err := http.Get(srv.URL + target)
			require.NoError(t, err)
			res.Body.Close()

			// Assert
			require.Empty(t, res.Header.Values("Content-Type"))
		})
	}
}
