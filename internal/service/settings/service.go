// Package settings manages per-user preferences. Writes go straight to
// storage; when storage is unavailable the update is parked as dirty and a
// background syncer flushes it with exponential backoff, so a flaky database
// does not lose preference changes.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, s domain.UserSettings) (*domain.UserSettings, error)
}

// Service reads and updates user settings.
type Service struct {
	log  *slog.Logger
	repo settingsRepo
	cfg  config.SettingsConfig

	mu      sync.Mutex
	pending map[uuid.UUID]domain.UserSettings
}

// NewService creates the settings service.
func NewService(logger *slog.Logger, repo settingsRepo, cfg config.SettingsConfig) *Service {
	return &Service{
		log:     logger.With("service", "settings"),
		repo:    repo,
		cfg:     cfg,
		pending: make(map[uuid.UUID]domain.UserSettings),
	}
}

// Get returns the user's settings. A parked (not yet flushed) update shadows
// the stored row so the user always reads their own writes.
func (s *Service) Get(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	s.mu.Lock()
	parked, dirty := s.pending[userID]
	s.mu.Unlock()
	if dirty {
		cp := parked
		return &cp, nil
	}

	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdateInput carries a full settings replacement.
type UpdateInput struct {
	BaseLanguage   domain.Language
	TargetLanguage domain.Language
	DailyGoal      int
	Voice          string
	Theme          string
}

func (i *UpdateInput) validate() error {
	var errs []domain.FieldError

	if !i.BaseLanguage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "base_language", Message: "unsupported"})
	}
	if !i.TargetLanguage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "unsupported"})
	}
	if i.BaseLanguage.IsValid() && i.BaseLanguage == i.TargetLanguage {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "must differ from base language"})
	}
	if i.DailyGoal < 1 || i.DailyGoal > 500 {
		errs = append(errs, domain.FieldError{Field: "daily_goal", Message: "must be between 1 and 500"})
	}
	switch i.Theme {
	case "light", "dark", "system":
	default:
		errs = append(errs, domain.FieldError{Field: "theme", Message: "must be light, dark or system"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Update replaces the user's settings. On a storage failure the change is
// accepted and parked for the background syncer; the caller sees the new
// values either way.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	next := domain.UserSettings{
		UserID:         userID,
		BaseLanguage:   input.BaseLanguage,
		TargetLanguage: input.TargetLanguage,
		DailyGoal:      input.DailyGoal,
		Voice:          input.Voice,
		Theme:          input.Theme,
		UpdatedAt:      time.Now(),
	}

	updated, err := s.repo.UpdateSettings(ctx, userID, next)
	if err == nil {
		s.clearPending(userID)
		return updated, nil
	}

	s.log.WarnContext(ctx, "settings write parked for sync",
		slog.String("user_id", userID.String()), "error", err)

	s.mu.Lock()
	s.pending[userID] = next
	s.mu.Unlock()

	cp := next
	return &cp, nil
}

func (s *Service) clearPending(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
}

// takePending snapshots the dirty set for a sync pass.
func (s *Service) takePending() map[uuid.UUID]domain.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	out := make(map[uuid.UUID]domain.UserSettings, len(s.pending))
	for id, v := range s.pending {
		out[id] = v
	}
	return out
}

// markFlushed removes an entry unless a newer write replaced it meanwhile.
func (s *Service) markFlushed(userID uuid.UUID, flushed domain.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.pending[userID]; ok && current.UpdatedAt.Equal(flushed.UpdatedAt) {
		delete(s.pending, userID)
	}
}
