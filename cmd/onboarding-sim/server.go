package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wrale/onboarding-sim/internal/authflow"
)

type server struct {
	cfg    Config
	router *chi.Mux
	flow   *authflow.Flow
	logger zerolog.Logger
}

func newServer(cfg Config, flow *authflow.Flow, logger zerolog.Logger) *server {
	srv := &server{
		cfg:    cfg,
		router: chi.NewRouter(),
		flow:   flow,
		logger: logger,
	}

	// Set up middleware
	srv.router.Use(middleware.RealIP)
	srv.router.Use(requestLogger(logger))
	srv.router.Use(middleware.Recoverer)
	srv.router.Use(middleware.Timeout(30 * time.Second))

	// Register routes
	srv.routes()

	return srv
}

func (s *server) routes() {
	// Health check endpoint
	s.router.Get("/health", s.handleHealth())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/environments", s.handleEnvironments())

		// Configuration registry
		r.Post("/register-config", s.handleRegisterConfig())
		r.Get("/configs", s.handleListConfigs())
		r.Delete("/configs/{keyID}", s.handleDeleteConfig())

		// Simulated login redirect and token exchanges
		r.Get("/authorize", s.handleAuthorize())
		r.Post("/user_token", s.handleUserToken())
		r.Post("/b2b_token", s.handleB2BToken())
		r.Post("/final_token_exchange", s.handleFinalExchange())
	})
}

// requestLogger emits one structured line per handled request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
