package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ovencontroller/internal/controller"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle. A
// controller is optional: when set, Shutdown forces the heater off before
// the listener stops accepting connections, so a process shutdown can never
// leave the SSR mid-duty-cycle because in-flight requests were still being
// drained.
type Server struct {
	httpServer *http.Server
	ctrl       *controller.Controller
}

// Extracted constants to avoid magic numbers and centralize tuning knobs.
const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// SetController wires the controller Shutdown stops before closing the
// HTTP listener. Safe to call before or after Run.
func (s *Server) SetController(ctrl *controller.Controller) {
	s.ctrl = ctrl
}

// newHTTPServer builds a configured *http.Server for the given address and handler.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr ensures the provided port is a valid address (accepts "8080" or ":8080").
func normalizeAddr(port string) string {
	if port == "" {
		// Leave defaulting to callers (e.g., config.Defaults), to avoid duplicating policy here.
		return ""
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server on the given port using the provided handler.
func (s *Server) Run(port string, handler http.Handler) error {
	addr := normalizeAddr(port)
	// ... existing code ...
	s.httpServer = newHTTPServer(addr, handler)
	return s.httpServer.ListenAndServe()
}

// Shutdown forces the heater to zero duty (if a controller is wired), then
// gracefully stops the HTTP server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ctrl != nil {
		s.ctrl.Stop()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
