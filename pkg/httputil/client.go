// Package httputil provides the shared outbound HTTP plumbing for the
// PhishGuard collectors: pooled clients, bounded body reads and the
// semaphore that caps per-scan fan-out.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize bounds response body reads. Collector endpoints such
// as RDAP return small JSON documents; anything near this limit is not a
// legitimate answer.
const MaxResponseSize = 10 * 1024 * 1024

// All clients share one transport so TLS sessions and TCP connections
// are reused across scans.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

var (
	fastClient *http.Client
	clientOnce sync.Once
)

// FastClient returns the shared 5s-timeout client. Infrastructure
// collectors run on the scan's critical path and must give up quickly;
// a registry that has not answered in 5 seconds will not answer.
func FastClient() *http.Client {
	clientOnce.Do(func() {
		fastClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: sharedTransport,
		}
	})
	return fastClient
}

// ReadResponseBody reads a response body up to maxSize bytes. A maxSize
// of zero or less applies MaxResponseSize.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// ReadErrorBody reads an error response body, capped at 1MB.
func ReadErrorBody(r io.Reader) ([]byte, error) {
	const maxErrorSize = 1 * 1024 * 1024
	return io.ReadAll(io.LimitReader(r, maxErrorSize))
}

// DrainAndClose drains and closes a response body so the underlying
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
