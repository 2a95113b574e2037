package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/analysis"
	"github.com/spacesedan/review-analyzer/internal/clients"
	"github.com/spacesedan/review-analyzer/internal/logging"
	"github.com/spacesedan/review-analyzer/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(os.Stderr, config.DefaultLogLevel)
		slog.Error("[Main] Invalid configuration",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(os.Stderr, cfg.LogLevel)

	app := &cli.Command{
		Name:  "review-analyzer",
		Usage: "Summarize customer reviews into pros, cons and an overall sentiment",
		Commands: []*cli.Command{
			serveCommand(cfg),
			analyzeCommand(cfg, os.Stdin, os.Stdout),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("[Main] Command failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newAnalyzer wires the OpenRouter client when a key is configured and offline
// is not requested. The returned client is nil when no provider is used.
func newAnalyzer(cfg config.Config, offline bool) (*analysis.Analyzer, *clients.OpenRouterClient) {
	summarizer := sentiment.NewSummarizer(sentiment.NewVaderScorer(), cfg.Stopwords)

	if offline || !cfg.ProviderConfigured() {
		slog.Info("[Main] No external summarizer, using local sentiment only")
		return analysis.NewAnalyzer(nil, summarizer), nil
	}

	client := clients.NewOpenRouterClient(cfg)
	slog.Info("[Main] External summarizer enabled",
		slog.String("model", cfg.OpenRouterModel))
	return analysis.NewAnalyzer(client, summarizer), client
}
