package httpx

import (
    "net"
    "net/http"
    "time"
)

// New builds an http.Client with pooled connections that honours proxy
// settings from the environment. A zero timeout leaves outbound calls
// unbounded, which is what the chart proxy wants: the hosting platform
// enforces the invocation deadline.
func New(timeout time.Duration) *http.Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          100,
        MaxIdleConnsPerHost:   10,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   10 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
    }
    return &http.Client{Timeout: timeout, Transport: transport}
}
