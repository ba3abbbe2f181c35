package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31 (got %d)", c.Auth.BcryptCost)
	}

	if c.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be > 0 (got %v)", c.Analysis.Timeout)
	}

	if err := c.Speech.validate(); err != nil {
		return fmt.Errorf("speech: %w", err)
	}

	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}

	return nil
}

func (c *SpeechConfig) validate() error {
	if c.MonthlyQuotaChars < 0 {
		return fmt.Errorf("monthly_quota_chars must be >= 0 (got %d)", c.MonthlyQuotaChars)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", c.CacheSize)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", c.CacheTTL)
	}
	return nil
}

func (c *SettingsConfig) validate() error {
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval must be > 0 (got %v)", c.SyncInterval)
	}
	if c.InitialBackoff <= 0 || c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("backoff window invalid (initial %v, max %v)", c.InitialBackoff, c.MaxBackoff)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	if s.MinEaseFactor <= 0 {
		return fmt.Errorf("min_ease_factor must be > 0 (got %v)", s.MinEaseFactor)
	}
	if s.DefaultEaseFactor < s.MinEaseFactor {
		return fmt.Errorf("default_ease_factor must be >= min_ease_factor (got %v < %v)", s.DefaultEaseFactor, s.MinEaseFactor)
	}
	if s.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", s.MaxIntervalDays)
	}
	if s.ReviewsPerDay < 0 {
		return fmt.Errorf("reviews_per_day must be >= 0 (got %d)", s.ReviewsPerDay)
	}

	steps, err := ParseLearningSteps(s.LearningStepsRaw)
	if err != nil {
		return fmt.Errorf("learning_steps: %w", err)
	}
	s.LearningSteps = steps

	return nil
}

// ParseLearningSteps parses a comma-separated string of durations (e.g. "1m,10m")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseLearningSteps(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	steps := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		steps = append(steps, d)
	}

	return steps, nil
}
