// internal/server/timeouts.go
//
// HTTP server construction with hardened timeouts.
//
// The console renders every page server-side, so responses are small and
// fast; the limits below shed slow-loris clients and stuck keep-alives,
// not long requests.  Gateway calls carry their own transport timeout
// (internal/api), well inside WriteTimeout.
//

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server for the console.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
