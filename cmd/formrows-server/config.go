package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-formrows/pkg/fieldsets"
)

// Config holds the server settings read from the environment.
type Config struct {
	Addr          string
	Lang          string
	Editors       []string
	Countries     []string
	ConfigDir     string
	SeedFile      string
	CSRFToken     string
	ShutdownGrace time.Duration
	LogLevel      slog.Level
}

var defaultEditors = []string{
	fieldsets.ConformsToKey,
	fieldsets.AlternateIdentifierKey,
	fieldsets.CreatorKey,
	fieldsets.TemporalCoverageKey,
	fieldsets.ThemeKey,
}

// loadEnvFiles reads .env style files into the process environment. Missing
// files are skipped; variables already set win.
func loadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			slog.Debug("env file not loaded", "file", file, "error", err)
		}
	}
}

// loadConfig builds the configuration from getenv, usually os.Getenv.
func loadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Addr:      get("FORMROWS_ADDR", ":8383"),
		Lang:      get("FORMROWS_LANG", "it"),
		Editors:   splitList(get("FORMROWS_EDITORS", "")),
		Countries: splitList(get("FORMROWS_COUNTRIES", "IT")),
		ConfigDir: get("FORMROWS_CONFIG_DIR", ""),
		SeedFile:  get("FORMROWS_SEED_FILE", ""),
		CSRFToken: get("FORMROWS_CSRF_TOKEN", ""),
	}
	if len(cfg.Editors) == 0 {
		cfg.Editors = append([]string(nil), defaultEditors...)
	}

	grace, err := time.ParseDuration(get("FORMROWS_SHUTDOWN_GRACE", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("config: FORMROWS_SHUTDOWN_GRACE: %w", err)
	}
	cfg.ShutdownGrace = grace

	if err := cfg.LogLevel.UnmarshalText([]byte(get("FORMROWS_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: FORMROWS_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
