package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultPort              = "5000"
	DefaultLogLevel          = "info"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1/"
	DefaultOpenRouterModel   = "google/gemini-2.0-flash-001"
	DefaultOpenRouterReferer = "http://localhost:5000"
	DefaultOpenRouterTitle   = "Review Analyzer"
	DefaultHealthInterval    = time.Minute
)

// DefaultStopwords is the compact stopword list used for keyword extraction.
var DefaultStopwords = []string{
	"the", "and", "is", "in", "it", "of", "to", "this", "that", "with", "for", "on",
	"was", "my", "i", "its", "but", "are", "very", "not", "be", "have", "has",
}

// Config is built once at start-up and handed to every component that needs it.
// Nothing below main reads the environment directly.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterTitle   string
	// Zero means no client-side timeout.
	OpenRouterTimeout time.Duration

	// Zero disables the provider health monitor.
	HealthCheckInterval time.Duration

	CORSAllowedOrigins []string
	Stopwords          []string
}

// Load reads the configuration from the environment. Call LoadEnv first to pick up .env files.
func Load() (Config, error) {
	cfg := Config{
		Env:                getEnvOrDefault("APP_ENV", "dev"),
		Port:               getEnvOrDefault("PORT", DefaultPort),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", DefaultLogLevel),
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:  getEnvOrDefault("OPENROUTER_BASE_URL", DefaultOpenRouterBaseURL),
		OpenRouterModel:    getEnvOrDefault("OPENROUTER_MODEL", DefaultOpenRouterModel),
		OpenRouterReferer:  getEnvOrDefault("OPENROUTER_REFERER", DefaultOpenRouterReferer),
		OpenRouterTitle:    getEnvOrDefault("OPENROUTER_TITLE", DefaultOpenRouterTitle),
		CORSAllowedOrigins: parseStringSlice(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		Stopwords:          append([]string(nil), DefaultStopwords...),
	}

	if raw := os.Getenv("REVIEW_STOPWORDS"); strings.TrimSpace(raw) != "" {
		cfg.Stopwords = parseStringSlice(strings.ToLower(raw))
	}

	var err error
	if cfg.OpenRouterTimeout, err = getEnvDuration("OPENROUTER_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.HealthCheckInterval, err = getEnvDuration("PROVIDER_HEALTHCHECK_INTERVAL", DefaultHealthInterval); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ProviderConfigured reports whether the external summarizer can be used at all.
func (c Config) ProviderConfigured() bool {
	return c.OpenRouterAPIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return d, nil
}

func parseStringSlice(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
