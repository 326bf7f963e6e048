package quote

import (
	"io"
	"net/http"
)

// ServeHTTP adapts Handle to net/http for local development and hosts that
// call a plain http.Handler. Only the headers from Response are set; the
// server's Content-Type sniffing is suppressed.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := h.Handle(r.Context(), r.URL.Query().Get("ticker"))
	for k, v := range res.Headers {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header()["Content-Type"] = nil
	}
	w.WriteHeader(res.StatusCode)
	_, _ = io.WriteString(w, res.Body)
}
