package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/spacesedan/review-analyzer/config"
)

// OpenRouterClient talks to OpenRouter's OpenAI-compatible chat-completion API.
// Each call is a single attempt: no retries, no caching.
type OpenRouterClient struct {
	client openai.Client
	model  string
}

func NewOpenRouterClient(cfg config.Config) *OpenRouterClient {
	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenRouterAPIKey),
		option.WithBaseURL(cfg.OpenRouterBaseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.OpenRouterTimeout}),
		option.WithHeader("User-Agent", USER_AGENT),
		option.WithHeader(OPENROUTER_REFERER_HEADER, cfg.OpenRouterReferer),
		option.WithHeader(OPENROUTER_TITLE_HEADER, cfg.OpenRouterTitle),
	)

	slog.Info("[OpenRouterClient] OpenRouter client initialized",
		slog.String("base_url", cfg.OpenRouterBaseURL),
		slog.String("model", cfg.OpenRouterModel),
		slog.Duration("timeout", cfg.OpenRouterTimeout))

	return &OpenRouterClient{
		client: client,
		model:  cfg.OpenRouterModel,
	}
}

// Complete sends the system instruction and user content as one chat completion
// and returns the provider's raw response envelope. Any transport error, non-2xx
// status or undecodable body is returned as an error.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	slog.Info("[OpenRouterClient] Sending chat completion request",
		slog.String("model", c.model))
	start := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			systemMessage(systemPrompt),
			userMessage(userContent),
		},
	})
	if err != nil {
		attrs := []any{
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)),
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			attrs = append(attrs, slog.Int("status_code", apiErr.StatusCode))
		}
		slog.Error("[OpenRouterClient] Chat completion request failed", attrs...)
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	slog.Info("[OpenRouterClient] Chat completion request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("choices", len(resp.Choices)))

	return resp.RawJSON(), nil
}

// Ping checks that the provider is reachable and accepts the configured key.
func (c *OpenRouterClient) Ping(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return fmt.Errorf("listing models failed: %w", err)
	}
	return nil
}

func systemMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: openai.String(content),
			},
		},
	}
}

func userMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(content),
			},
		},
	}
}
