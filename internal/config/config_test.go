package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsEmptyPath(t *testing.T) {
	d, err := LoadDefaults("")
	require.NoError(t, err)
	assert.Equal(t, BuiltinDefaults(), d)
	assert.Equal(t, 12, d.Length)
	assert.Equal(t, crypto.AllClasses, d.Classes)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	d, err := LoadDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BuiltinDefaults(), d)
}

func TestLoadDefaultsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 20\nclasses: [lower, digits]\n"), 0o600))

	d, err := LoadDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Length)
	assert.Equal(t, crypto.NewClassSet(crypto.Lowercase, crypto.Digit), d.Classes)
}

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Defaults
		wantErr error
	}{
		{
			name: "length only keeps classes",
			yaml: "length: 32",
			want: Defaults{Length: 32, Classes: crypto.AllClasses},
		},
		{
			name: "classes only keeps length",
			yaml: "classes: [symbols]",
			want: Defaults{Length: 12, Classes: crypto.NewClassSet(crypto.Symbol)},
		},
		{
			name:    "length out of range",
			yaml:    "length: 2",
			wantErr: crypto.ErrOutOfRange,
		},
		{
			name:    "empty class list",
			yaml:    "classes: []",
			wantErr: crypto.ErrNoClassSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDefaults([]byte(tt.yaml))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDefaultsRejectsUnknownClass(t *testing.T) {
	_, err := ParseDefaults([]byte("classes: [lower, emoji]"))
	assert.Error(t, err)
}

func TestParseDefaultsRejectsMalformedYAML(t *testing.T) {
	_, err := ParseDefaults([]byte("length: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_TOKEN_SECRET", "s3cret")
	t.Setenv("API_TOKEN_EXPIRY", "90m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("PASSFORGE_DEFAULTS", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.APITokenSecret)
	assert.Equal(t, 90*time.Minute, cfg.APITokenExpiry)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, BuiltinDefaults(), cfg.Defaults)
	assert.NotNil(t, cfg.Logger())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
