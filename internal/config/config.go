package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/passforge/passforge-go/internal/crypto"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	APITokenSecret string
	APITokenExpiry time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	DefaultsFile   string
	Defaults       Defaults
}

// Defaults pre-fills the generation form when a caller leaves a field unset.
type Defaults struct {
	Length  int
	Classes crypto.ClassSet
}

// BuiltinDefaults mirrors the initial state of the generator form.
func BuiltinDefaults() Defaults {
	return Defaults{Length: crypto.DefaultLength, Classes: crypto.AllClasses}
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
		APITokenSecret: os.Getenv("API_TOKEN_SECRET"),
		APITokenExpiry: getEnvDuration("API_TOKEN_EXPIRY", 24*time.Hour),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		DefaultsFile:   os.Getenv("PASSFORGE_DEFAULTS"),
	}

	defaults, err := LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		slog.Error("invalid defaults file", "path", cfg.DefaultsFile, "error", err)
		os.Exit(1)
	}
	cfg.Defaults = defaults

	return cfg
}

// Logger builds the process logger: JSON in production, text elsewhere.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.Env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

type defaultsFile struct {
	Length  *int     `yaml:"length"`
	Classes []string `yaml:"classes"`
}

// LoadDefaults reads a YAML defaults file. An empty path or a missing file
// yields BuiltinDefaults.
func LoadDefaults(path string) (Defaults, error) {
	defaults := BuiltinDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("defaults file not found, using built-in defaults", "path", path)
			return defaults, nil
		}
		return Defaults{}, fmt.Errorf("reading defaults file: %w", err)
	}

	return ParseDefaults(data)
}

// ParseDefaults decodes YAML defaults and validates them as a generation request.
func ParseDefaults(data []byte) (Defaults, error) {
	defaults := BuiltinDefaults()

	var raw defaultsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Defaults{}, fmt.Errorf("parsing defaults file: %w", err)
	}

	if raw.Length != nil {
		defaults.Length = *raw.Length
	}
	if raw.Classes != nil {
		classes, err := crypto.ParseClassSet(raw.Classes)
		if err != nil {
			return Defaults{}, err
		}
		defaults.Classes = classes
	}

	req := crypto.GenerationRequest{Length: defaults.Length, Classes: defaults.Classes}
	if err := req.Validate(); err != nil {
		return Defaults{}, fmt.Errorf("defaults: %w", err)
	}

	return defaults, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring invalid number", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
