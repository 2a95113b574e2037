package analysis

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

var ErrNoReviews = errors.New("no reviews provided")

// Completer returns the raw chat-completion envelope for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// FallbackSummarizer summarizes reviews locally and cannot fail.
type FallbackSummarizer interface {
	Summarize(reviews []string) models.SummaryResult
}

// Analyzer decides between the external model's answer and the local summary.
// Once the batch is non-empty it always produces a result.
type Analyzer struct {
	completer Completer
	fallback  FallbackSummarizer
}

// NewAnalyzer builds an Analyzer. A nil completer runs every batch through the fallback.
func NewAnalyzer(completer Completer, fallback FallbackSummarizer) *Analyzer {
	return &Analyzer{completer: completer, fallback: fallback}
}

func (a *Analyzer) Analyze(ctx context.Context, batch models.ReviewBatch) (models.AnalysisResult, error) {
	if batch.Empty() {
		return models.AnalysisResult{}, ErrNoReviews
	}
	reviews := batch.Reviews()

	if result, ok := a.analyzeExternal(ctx, reviews); ok {
		return result, nil
	}

	slog.Info("[Analyzer] Using fallback summarizer",
		slog.Int("reviews", len(reviews)))
	return models.FallbackResult(a.fallback.Summarize(reviews)), nil
}

// analyzeExternal returns false when the provider could not give a usable envelope.
// Model text without a JSON object still counts as usable and comes back raw.
func (a *Analyzer) analyzeExternal(ctx context.Context, reviews []string) (models.AnalysisResult, bool) {
	if a.completer == nil {
		return models.AnalysisResult{}, false
	}

	envelope, err := a.completer.Complete(ctx, SystemInstruction, BuildUserContent(reviews))
	if err != nil {
		slog.Warn("[Analyzer] External summarizer failed",
			slog.String("error", err.Error()))
		return models.AnalysisResult{}, false
	}

	// A null content arrives here as "" and is returned raw as "", not null.
	content, ok := utils.MessageContent(envelope)
	if !ok {
		slog.Warn("[Analyzer] External summarizer returned a malformed envelope",
			getPreview(envelope))
		return models.AnalysisResult{}, false
	}

	fields, ok := utils.ExtractJSONObject(content)
	if !ok || len(fields) == 0 {
		slog.Warn("[Analyzer] Model output was not a JSON object, returning raw",
			getPreview(content))
		return models.RawResult(content), true
	}

	return models.ExternalResult(fields), true
}

const previewLength = 100

// getPreview trims raw to previewLength bytes without splitting a rune.
func getPreview(raw string) slog.Attr {
	if len(raw) > previewLength {
		cut := previewLength
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	return slog.String("raw_response", raw)
}
