package config

import (
	"log/slog"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const envDir = "config/envs"

// LoadEnv loads config/envs/.env.<env> into the process environment and reports
// whether the file was found. Variables already set are never overridden.
func LoadEnv(env string) bool {
	return loadEnvFile(filepath.Join(envDir, ".env."+env))
}

func loadEnvFile(path string) bool {
	if err := gotenv.Load(path); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return false
	}
	slog.Debug("[Config] Loaded env file",
		slog.String("file", path))
	return true
}
