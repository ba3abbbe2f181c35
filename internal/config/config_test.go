package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
	t.Setenv("ANALYSIS_API_KEY", "test-analysis-key")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

analysis:
  api_key: "yaml-analysis-key"
  model: "claude-sonnet-4-20250514"
  timeout: "20s"

speech:
  api_key: "speech-key"
  monthly_quota_chars: 100
  cache_size: 64
  cache_ttl: "1h"

settings:
  sync_interval: "10s"
  initial_backoff: "250ms"
  max_backoff: "30s"

dictionary:
  max_word_length: 80
  default_ease_factor: 2.5

srs:
  default_ease_factor: 2.5
  min_ease_factor: 1.3
  max_interval_days: 365
  learning_steps: "1m,10m"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server: got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns: got %d", cfg.Database.MaxConns)
	}
	if cfg.Analysis.Timeout != 20*time.Second {
		t.Errorf("analysis.timeout: got %v", cfg.Analysis.Timeout)
	}
	if cfg.Speech.MonthlyQuotaChars != 100 {
		t.Errorf("speech.monthly_quota_chars: got %d", cfg.Speech.MonthlyQuotaChars)
	}
	if cfg.Dictionary.MaxWordLength != 80 {
		t.Errorf("dictionary.max_word_length: got %d", cfg.Dictionary.MaxWordLength)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log: got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("ANALYSIS_MODEL", "claude-haiku-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("env should override yaml: got port %d", cfg.Server.Port)
	}
	if cfg.Analysis.Model != "claude-haiku-env" {
		t.Errorf("env should override yaml: got model %s", cfg.Analysis.Model)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	// Run in a directory without a config.yaml.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("default access_token_ttl: got %v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Speech.CacheSize != 1024 || cfg.Speech.CacheTTL != 24*time.Hour {
		t.Errorf("speech cache defaults: got %d/%v", cfg.Speech.CacheSize, cfg.Speech.CacheTTL)
	}
	if len(cfg.SRS.LearningSteps) != 2 {
		t.Errorf("default learning_steps: got %v", cfg.SRS.LearningSteps)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "too-short")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("expected jwt_secret error, got %v", err)
	}
}

func TestValidate_BadLearningSteps(t *testing.T) {
	validEnv(t)
	t.Setenv("SRS_LEARNING_STEPS", "1m,banana")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "learning_steps") {
		t.Fatalf("expected learning_steps error, got %v", err)
	}
}

func TestValidate_BackoffWindow(t *testing.T) {
	validEnv(t)
	t.Setenv("SETTINGS_INITIAL_BACKOFF", "1m")
	t.Setenv("SETTINGS_MAX_BACKOFF", "1s")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "backoff") {
		t.Fatalf("expected backoff error, got %v", err)
	}
}

func TestParseLearningSteps(t *testing.T) {
	tests := []struct {
		raw     string
		want    []time.Duration
		wantErr bool
	}{
		{"1m,10m", []time.Duration{time.Minute, 10 * time.Minute}, false},
		{" 30s , 5m ", []time.Duration{30 * time.Second, 5 * time.Minute}, false},
		{"", nil, false},
		{"nope", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseLearningSteps(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLearningSteps(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLearningSteps(%q): %v", tt.raw, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseLearningSteps(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseLearningSteps(%q)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSpeechEnabled(t *testing.T) {
	if (SpeechConfig{}).SpeechEnabled() {
		t.Error("empty api key should disable speech")
	}
	if !(SpeechConfig{APIKey: "k"}).SpeechEnabled() {
		t.Error("api key should enable speech")
	}
}
