package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/spacesedan/review-analyzer/internal/analysis"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

const (
	noReviewsMessage       = "No reviews provided"
	requestTooLargeMessage = "Request body too large"
)

// analyzeHandler summarizes up to MaxReviews reviews. A body over maxRequestBytes
// gets 413. Any other missing or unreadable body is treated like an empty one.
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		slog.Warn("[API] Request body too large",
			slog.Int64("limit", tooLarge.Limit))
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: requestTooLargeMessage})
		return
	}
	if err != nil {
		slog.Warn("[API] Failed to read request body",
			slog.String("error", err.Error()))
	} else if len(body) > 0 {
		if err := utils.DeserializeFromJSON(body, &req); err != nil {
			req = models.AnalyzeRequest{}
		}
	}

	batch := models.NewReviewBatch(req.Reviews)
	if len(req.Reviews) > batch.Len() {
		slog.Info("[API] Truncated review batch",
			slog.Int("received", len(req.Reviews)),
			slog.Int("kept", batch.Len()))
	}

	result, err := s.analyzer.Analyze(r.Context(), batch)
	if errors.Is(err, analysis.ErrNoReviews) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: noReviewsMessage})
		return
	}
	if err != nil {
		slog.Error("[API] Analysis failed",
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "analysis failed"})
		return
	}

	slog.Info("[API] Analysis complete",
		slog.String("source", result.Source),
		slog.String("kind", result.Kind.String()),
		slog.Int("reviews", batch.Len()))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthy := false
	if s.providerHealthy != nil {
		healthy = s.providerHealthy.Load()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "ok",
		"provider_configured": s.providerConfigured,
		"provider_healthy":    s.providerConfigured && healthy,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[API] Failed to write response",
			slog.String("error", err.Error()))
	}
}
