// Package server serves a built output directory over HTTP for local previews.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
)

// WasmContentType is the media type browsers require for streaming module instantiation.
const WasmContentType = "application/wasm"

const shutdownTimeout = 5 * time.Second

// Server serves the files of an output directory.
type Server struct {
	logger ports.Logger
}

// New creates a new Server.
func New(logger ports.Logger) *Server {
	return &Server{logger: logger}
}

// Handler returns a router serving dir. Responses are never cached by the browser
// so a rebuilt bundle is picked up on reload.
func (s *Server) Handler(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(s.logRequests)
	r.Use(wasmContentType)

	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

// Serve listens on addr and serves dir until ctx is cancelled.
// ready, when not nil, receives the bound address once the listener is open.
func (s *Server) Serve(ctx context.Context, addr, dir string, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}

	srv := &http.Server{
		Handler:           s.Handler(dir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info(fmt.Sprintf("serving %s on http://%s", dir, ln.Addr()))
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, "server stopped")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "failed to shut down server")
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start)))
	})
}

func wasmContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", WasmContentType)
		}
		next.ServeHTTP(w, r)
	})
}
