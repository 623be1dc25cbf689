package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sonix-engine/internal/infra/logging"
	"sonix-engine/internal/usecase"
)

// Server exposes the response engine's in-process contract over HTTP for
// the front-end collaborator.
type Server struct {
	responses   usecase.ResponseUseCase
	suggestions usecase.SuggestionUseCase
	auth        *AuthManager
	log         *zerolog.Logger
}

func NewServer(
	responses usecase.ResponseUseCase,
	suggestions usecase.SuggestionUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		responses:   responses,
		suggestions: suggestions,
		auth:        auth,
		log:         logger,
	}
}

// Routes builds the router. Conversation routes sit behind session auth.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/session", s.handleSessionCreate)

	r.Route("/api/v1/conversations/{conversationID}", func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Put("/context", s.handleContextUpdate)
		r.Get("/context", s.handleContextGet)
		r.Post("/messages", s.handleGenerate)
		r.Get("/suggestions", s.handleSuggestions)
	})

	return r
}

// sessionMiddleware authenticates the request and stamps the context with
// a trace id and the session's user id, so downstream log lines carry both.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		ctx = logging.WithUserID(ctx, claims.UserID)
		logging.With(ctx, s.log).Debug().Str("path", r.URL.Path).Msg("session accepted")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
