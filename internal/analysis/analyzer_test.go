package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/sentiment"
)

type mockCompleter struct {
	completeFunc func(ctx context.Context, systemPrompt, userContent string) (string, error)
	calls        int
	lastSystem   string
	lastUser     string
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userContent
	if m.completeFunc != nil {
		return m.completeFunc(ctx, systemPrompt, userContent)
	}
	return "", errors.New("not configured")
}

type countingSummarizer struct {
	inner *sentiment.Summarizer
	calls int
	last  []string
}

func (c *countingSummarizer) Summarize(reviews []string) models.SummaryResult {
	c.calls++
	c.last = reviews
	return c.inner.Summarize(reviews)
}

func newFallback() *countingSummarizer {
	return &countingSummarizer{inner: sentiment.NewSummarizer(sentiment.NewVaderScorer(), config.DefaultStopwords)}
}

func envelopeWith(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id": "gen-1",
		"choices": []any{
			map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(data)
}

func TestAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()
	reviews := []string{
		"Great battery life and sturdy build",
		"Terrible customer service, very slow",
	}

	t.Run("empty batch is rejected without calling anything", func(t *testing.T) {
		completer := &mockCompleter{}
		fallback := newFallback()
		a := NewAnalyzer(completer, fallback)

		_, err := a.Analyze(ctx, models.NewReviewBatch(nil))

		assert.ErrorIs(t, err, ErrNoReviews)
		assert.Zero(t, completer.calls)
		assert.Zero(t, fallback.calls)
	})

	t.Run("fenced JSON is passed through with source", func(t *testing.T) {
		content := "Sure! ```json\n{\"pros\":[\"fast\"],\"cons\":[],\"overall_sentiment\":\"Positive\",\"score\":4.5,\"one_line_summary\":\"Great\"}\n```"
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return envelopeWith(content), nil
		}}
		fallback := newFallback()
		a := NewAnalyzer(completer, fallback)

		got, err := a.Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, models.ResultExternal, got.Kind)
		assert.Equal(t, models.SourceOpenRouter, got.Source)
		assert.Zero(t, fallback.calls)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"pros": ["fast"],
			"cons": [],
			"overall_sentiment": "Positive",
			"score": 4.5,
			"one_line_summary": "Great",
			"source": "openrouter"
		}`, string(data))
	})

	t.Run("prompts carry the fixed instruction and bulleted reviews", func(t *testing.T) {
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return envelopeWith(`{"pros":[]}`), nil
		}}
		a := NewAnalyzer(completer, newFallback())

		_, err := a.Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, SystemInstruction, completer.lastSystem)
		assert.Equal(t, "Here are the reviews to analyze:\n- Great battery life and sturdy build\n- Terrible customer service, very slow", completer.lastUser)
	})

	t.Run("prose only comes back raw", func(t *testing.T) {
		prose := "I could not produce JSON, but the reviews are mostly positive."
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return envelopeWith(prose), nil
		}}
		fallback := newFallback()
		a := NewAnalyzer(completer, fallback)

		got, err := a.Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, models.ResultRaw, got.Kind)
		assert.Zero(t, fallback.calls)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{"source":"openrouter","raw":%q}`, prose), string(data))
	})

	t.Run("empty object comes back raw", func(t *testing.T) {
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return envelopeWith("{}"), nil
		}}
		got, err := NewAnalyzer(completer, newFallback()).Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, models.ResultRaw, got.Kind)
		assert.Equal(t, "{}", got.Raw)
	})

	t.Run("model supplied source is overridden", func(t *testing.T) {
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return envelopeWith(`{"source":"gemini","score":3}`), nil
		}}
		got, err := NewAnalyzer(completer, newFallback()).Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, `{"source":"openrouter","score":3}`, string(data))
	})

	t.Run("provider failures fall back", func(t *testing.T) {
		failures := map[string]func(context.Context, string, string) (string, error){
			"transport error": func(context.Context, string, string) (string, error) {
				return "", errors.New("connection refused")
			},
			"no choices": func(context.Context, string, string) (string, error) {
				return `{"id":"gen-1","choices":[]}`, nil
			},
			"missing content": func(context.Context, string, string) (string, error) {
				return `{"choices":[{"message":{"role":"assistant"}}]}`, nil
			},
			"not json": func(context.Context, string, string) (string, error) {
				return `upstream timeout`, nil
			},
			"error envelope": func(context.Context, string, string) (string, error) {
				return `{"error":{"message":"rate limited","code":429}}`, nil
			},
		}

		for name, fn := range failures {
			t.Run(name, func(t *testing.T) {
				fallback := newFallback()
				a := NewAnalyzer(&mockCompleter{completeFunc: fn}, fallback)

				got, err := a.Analyze(ctx, models.NewReviewBatch(reviews))
				require.NoError(t, err)

				assert.Equal(t, models.ResultFallback, got.Kind)
				assert.Equal(t, models.SourceFallback, got.Source)
				assert.Equal(t, 1, fallback.calls)
			})
		}
	})

	t.Run("fallback scenario with mixed reviews", func(t *testing.T) {
		a := NewAnalyzer(&mockCompleter{}, newFallback())

		got, err := a.Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, models.SourceFallback, got.Source)
		assert.Subset(t, got.Summary.Pros, []string{"great", "battery", "sturdy", "build"})
		assert.Subset(t, got.Summary.Cons, []string{"terrible", "customer", "service", "slow"})
		assert.GreaterOrEqual(t, got.Summary.Score, -1.0)
		assert.LessOrEqual(t, got.Summary.Score, 1.0)
		assert.NotEqual(t, models.SentimentMixed, got.Summary.OverallSentiment)
	})

	t.Run("null content comes back raw and empty", func(t *testing.T) {
		completer := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return `{"choices":[{"message":{"role":"assistant","content":null}}]}`, nil
		}}
		fallback := newFallback()

		got, err := NewAnalyzer(completer, fallback).Analyze(ctx, models.NewReviewBatch(reviews))
		require.NoError(t, err)

		assert.Equal(t, models.ResultRaw, got.Kind)
		assert.Equal(t, "", got.Raw)
		assert.Zero(t, fallback.calls)
	})

	t.Run("nil completer goes straight to fallback", func(t *testing.T) {
		fallback := newFallback()
		got, err := NewAnalyzer(nil, fallback).Analyze(ctx, models.NewReviewBatch([]string{"Fine."}))
		require.NoError(t, err)

		assert.Equal(t, models.ResultFallback, got.Kind)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("only the first thirty reviews are considered", func(t *testing.T) {
		many := make([]string, 35)
		for i := range many {
			many[i] = fmt.Sprintf("review number %d", i)
		}
		completer := &mockCompleter{}
		fallback := newFallback()

		_, err := NewAnalyzer(completer, fallback).Analyze(ctx, models.NewReviewBatch(many))
		require.NoError(t, err)

		assert.Equal(t, many[:30], fallback.last)
		assert.Contains(t, completer.lastUser, "- review number 29")
		assert.NotContains(t, completer.lastUser, "- review number 30")
	})
}

func TestGetPreview(t *testing.T) {
	short := "short response"
	assert.Equal(t, short, getPreview(short).Value.String())

	ascii := strings.Repeat("a", 150)
	assert.Equal(t, strings.Repeat("a", 100)+"...", getPreview(ascii).Value.String())

	// 99 ASCII bytes put the three-byte rune across the cut.
	mixed := strings.Repeat("a", 99) + strings.Repeat("€", 10)
	got := getPreview(mixed).Value.String()
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 99)+"...", got)
	assert.Equal(t, "raw_response", getPreview(mixed).Key)
}

func TestBuildUserContent(t *testing.T) {
	assert.Equal(t, "Here are the reviews to analyze:\n- a\n- b", BuildUserContent([]string{"a", "b"}))
	assert.Equal(t, "Here are the reviews to analyze:\n", BuildUserContent(nil))
}
