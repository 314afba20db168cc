// Package api exposes document generation over HTTP.
//
// Public endpoints describe the service; generation endpoints sit behind the
// two-key check. Generated files are returned as attachments, everything else
// uses the {data, error} JSON envelope.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"docgen/internal/config"
	"docgen/internal/logger"
	"docgen/pkg/services"
)

// ShutdownTimeout bounds the drain of in-flight requests.
const ShutdownTimeout = 15 * time.Second

// MaxBodyBytes bounds a generation request; inline logos travel base64-encoded.
const MaxBodyBytes = 10 << 20

// Endpoints lists every route, for the index and the 404 body.
var Endpoints = []string{
	"/", "/health", "/api/themes", "/api/example",
	"/api/quotes", "/api/invoices", "/api/test", "/api/test-auth",
}

// Server holds the HTTP handlers.
type Server struct {
	gen     services.DocumentGenerator
	cfg     *config.Config
	version string
	now     func() time.Time
	log     zerolog.Logger
}

// NewServer creates a Server.
func NewServer(gen services.DocumentGenerator, cfg *config.Config, version string) *Server {
	return &Server{
		gen:     gen,
		cfg:     cfg,
		version: version,
		now:     time.Now,
		log:     logger.WithComponent("api"),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.Index)
	r.Get("/health", s.Health)
	r.Get("/api/themes", s.Themes)
	r.Get("/api/example", s.Example)

	r.Group(func(r chi.Router) {
		r.Use(APIKeys(s.cfg.APIKey1, s.cfg.APIKey2))

		r.Post("/api/quotes", s.CreateQuote)
		r.Post("/api/invoices", s.CreateInvoice)
		r.Post("/api/test", s.TestQuote)
		r.Get("/api/test-auth", s.TestAuth)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		writeJSONBody(w, Response{
			Data:  map[string]any{"endpoints": Endpoints},
			Error: "endpoint not found",
		})
	})

	return r
}

// Run serves Routes on addr until ctx is canceled, then drains in-flight
// requests for up to ShutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Bool("auth", s.cfg.AuthEnabled()).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
