package web

import (
	"net/http"
	"strings"

	"github.com/Novalitix/go-to-japan-ai/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	tripUC usecase.TripUseCase
	apiKey string
	log    *zerolog.Logger
}

// NewServer wires the job-gateway routes. apiKey is optional: when empty
// the API stays open; when set, /kickoff_post requires a bearer token.
func NewServer(tripUC usecase.TripUseCase, apiKey string, logger *zerolog.Logger) *Server {
	srvLog := logger.With().Str("component", "web.Server").Logger()
	return &Server{tripUC: tripUC, apiKey: apiKey, log: &srvLog}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler())
	r.With(s.authMiddleware).Post("/kickoff_post", kickoffHandler(s.tripUC, s.log))
	r.Get("/results/{job_id}", resultsHandler(s.tripUC))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// authMiddleware provides simple Bearer token authentication when an API
// key is configured; a missing key disables the guard entirely.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized: Malformed token")
			return
		}
		if tokenParts[1] != s.apiKey {
			writeDetail(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}
