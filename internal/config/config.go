package config

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type Config struct {
	StorePath string
	Env       string
	LogLevel  zerolog.Level
	NoDemo    bool
}

func Load() Config {
	cfg := Config{
		StorePath: getEnv("SPENDIFY_STORE", defaultStorePath()),
		Env:       getEnv("SPENDIFY_ENV", "development"),
		LogLevel:  zerolog.WarnLevel,
		NoDemo:    os.Getenv("SPENDIFY_NO_DEMO") != "",
	}

	if level, err := zerolog.ParseLevel(getEnv("SPENDIFY_LOG_LEVEL", "warn")); err == nil {
		cfg.LogLevel = level
	}

	return cfg
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "spendify-store.json"
	}
	return filepath.Join(home, ".spendify", "store.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
