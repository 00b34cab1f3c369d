// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server serves the WordHunter web interface and JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/internal/i18n"
)

const (
	// DefaultLimit caps the number of words looked up for one page.
	DefaultLimit = 50

	// MaxLimit caps the limit a client may ask for.
	MaxLimit = 500

	shutdownTimeout = 5 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/index.html"))

// Options configure a [Server].
type Options struct {
	// Addr is the listen address.
	Addr string

	// Translate enables translation of lookups.
	Translate bool

	// Datamuse adds Datamuse suggestions to searches.
	Datamuse bool

	// FontFile is passed to the tracer sheet generator.
	FontFile string

	Bundle *i18n.Bundle
	Logger *slog.Logger
}

// Server serves a [wordhunter.Hunter] over HTTP.
type Server struct {
	hunter *wordhunter.Hunter
	opts   Options
	logger *slog.Logger
	bundle *i18n.Bundle
}

// New returns a server for h.
func New(h *wordhunter.Hunter, opts *Options) *Server {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Bundle == nil {
		o.Bundle = i18n.Default()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		hunter: h,
		opts:   o,
		logger: o.Logger,
		bundle: o.Bundle,
	}
}

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/define", s.handleDefine)
	mux.HandleFunc("GET /tracer.pdf", s.handleTracer)
	mux.HandleFunc("GET /export.xlsx", s.handleExport)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	return s.withRequestLog(mux)
}

// ListenAndServe serves until ctx is cancelled and then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "serving", slog.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.InfoContext(ctx, "shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
