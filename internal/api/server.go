package api

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/spacesedan/review-analyzer/internal/models"
)

// maxRequestBytes bounds the /analyze body.
const maxRequestBytes = 1 << 20

type ReviewAnalyzer interface {
	Analyze(ctx context.Context, batch models.ReviewBatch) (models.AnalysisResult, error)
}

// Server holds the HTTP handlers and their dependencies
type Server struct {
	analyzer           ReviewAnalyzer
	allowedOrigins     []string
	providerConfigured bool
	providerHealthy    *atomic.Bool
}

// NewServer creates the HTTP server. providerHealthy may be nil when no
// health monitor is running.
func NewServer(analyzer ReviewAnalyzer, allowedOrigins []string, providerConfigured bool, providerHealthy *atomic.Bool) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{
		analyzer:           analyzer,
		allowedOrigins:     allowedOrigins,
		providerConfigured: providerConfigured,
		providerHealthy:    providerHealthy,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/analyze", s.analyzeHandler).Methods(http.MethodPost)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r)
}
