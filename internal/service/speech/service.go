// Package speech serves word pronunciations: synthesized clips are cached
// with a TTL and each user spends a monthly character quota. Cache hits are
// free — only a real provider call consumes quota.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/provider/speech"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

type synthesizer interface {
	Synthesize(ctx context.Context, text string, lang domain.Language, voice string) (*speech.Clip, error)
}

// usageRepo tracks per-user billed characters inside a monthly window.
type usageRepo interface {
	CharsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	Record(ctx context.Context, userID uuid.UUID, text string, lang domain.Language, chars int) error
}

// cacheKey identifies one synthesized clip.
type cacheKey struct {
	text  string
	lang  domain.Language
	voice string
}

// Service synthesizes and caches pronunciations.
type Service struct {
	log   *slog.Logger
	tts   synthesizer
	usage usageRepo
	cache *lru.LRU[cacheKey, *speech.Clip]
	cfg   config.SpeechConfig

	now func() time.Time
}

// NewService creates the speech service with an expiring LRU clip cache.
func NewService(logger *slog.Logger, tts synthesizer, usage usageRepo, cfg config.SpeechConfig) *Service {
	return &Service{
		log:   logger.With("service", "speech"),
		tts:   tts,
		usage: usage,
		cache: lru.NewLRU[cacheKey, *speech.Clip](cfg.CacheSize, nil, cfg.CacheTTL),
		cfg:   cfg,
		now:   time.Now,
	}
}

// Pronounce returns an audio clip for the given text. The clip comes from the
// cache when a fresh copy exists; otherwise the provider is called and the
// user's monthly quota is charged.
func (s *Service) Pronounce(ctx context.Context, text string, lang domain.Language, voice string) (*speech.Clip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	text = strings.TrimSpace(text)
	var errs []domain.FieldError
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if !lang.IsValid() {
		errs = append(errs, domain.FieldError{Field: "language", Message: "unsupported"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	if voice == "" {
		voice = s.cfg.DefaultVoice
	}

	key := cacheKey{text: domain.NormalizeText(text), lang: lang, voice: voice}
	if clip, ok := s.cache.Get(key); ok {
		return clip, nil
	}

	chars := utf8.RuneCountInString(text)
	if err := s.checkQuota(ctx, userID, chars); err != nil {
		return nil, err
	}

	clip, err := s.tts.Synthesize(ctx, text, lang, voice)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	if err := s.usage.Record(ctx, userID, key.text, lang, chars); err != nil {
		// The clip is already paid for; losing one usage row must not fail
		// the request.
		s.log.ErrorContext(ctx, "record synthesis usage", "error", err)
	}

	s.cache.Add(key, clip)

	s.log.InfoContext(ctx, "clip synthesized",
		slog.String("lang", lang.String()),
		slog.String("voice", voice),
		slog.Int("bytes", len(clip.Audio)),
	)
	return clip, nil
}

// checkQuota verifies the request's characters still fit into the user's
// quota for the current calendar month. A non-positive quota disables the
// limit.
func (s *Service) checkQuota(ctx context.Context, userID uuid.UUID, chars int) error {
	if s.cfg.MonthlyQuotaChars <= 0 {
		return nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	used, err := s.usage.CharsSince(ctx, userID, monthStart)
	if err != nil {
		return fmt.Errorf("count billed characters: %w", err)
	}
	if used+chars > s.cfg.MonthlyQuotaChars {
		return fmt.Errorf("monthly character quota %d: %w", s.cfg.MonthlyQuotaChars, domain.ErrQuotaExceeded)
	}
	return nil
}
