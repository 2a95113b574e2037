package sentiment

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/review-analyzer/internal/models"
)

const (
	positiveLabelThreshold = 0.05
	negativeLabelThreshold = -0.05

	prosPolarityThreshold = 0.1
	consPolarityThreshold = -0.1
)

// Summarizer is the local, network-free summarizer. It is safe for
// concurrent use once constructed.
type Summarizer struct {
	scorer    PolarityScorer
	stopwords map[string]struct{}
}

func NewSummarizer(scorer PolarityScorer, stopwords []string) *Summarizer {
	return &Summarizer{
		scorer:    scorer,
		stopwords: StopwordSet(stopwords),
	}
}

// Summarize never fails. An empty batch yields a neutral zero-score result.
func (s *Summarizer) Summarize(reviews []string) models.SummaryResult {
	polarities := make([]float64, len(reviews))
	for i, r := range reviews {
		polarities[i] = clampPolarity(s.scorer.Polarity(r))
	}

	score := clampPolarity(mean(polarities))
	label := LabelForScore(score)

	pros := s.keywords(reviews, polarities, func(p float64) bool { return p > prosPolarityThreshold })
	cons := s.keywords(reviews, polarities, func(p float64) bool { return p < consPolarityThreshold })

	slog.Debug("[FallbackSummarizer] Summarized reviews",
		slog.Int("reviews", len(reviews)),
		slog.Float64("score", score),
		slog.String("label", string(label)))

	return models.SummaryResult{
		Pros:             pros,
		Cons:             cons,
		OverallSentiment: label,
		Score:            score,
		OneLineSummary:   fmt.Sprintf("Overall %s (score=%.2f).", label, score),
	}
}

func LabelForScore(score float64) models.SentimentLabel {
	switch {
	case score > positiveLabelThreshold:
		return models.SentimentPositive
	case score < negativeLabelThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func (s *Summarizer) keywords(reviews []string, polarities []float64, keep func(float64) bool) []string {
	var words []string
	for i, r := range reviews {
		if !keep(polarities[i]) {
			continue
		}
		for _, t := range Tokenize(r) {
			if _, stop := s.stopwords[t]; !stop {
				words = append(words, t)
			}
		}
	}
	return TopKeywords(words, maxKeywords)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
