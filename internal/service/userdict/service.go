// Package userdict serves a user's view of the dictionary: listing linked
// entries with their full trees, fetching a single card and unlinking.
package userdict

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

type linkRepo interface {
	Find(ctx context.Context, userID uuid.UUID, filter userdict.Filter) ([]domain.UserDictionaryLink, int, error)
	GetByID(ctx context.Context, userID, linkID uuid.UUID) (*domain.UserDictionaryLink, error)
	Unlink(ctx context.Context, userID, entryID uuid.UUID) error
}

type entryRepo interface {
	GetByID(ctx context.Context, entryID uuid.UUID) (*domain.DictionaryEntry, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DictionaryEntry, error)
}

// Service reads and maintains the user's dictionary.
type Service struct {
	log     *slog.Logger
	links   linkRepo
	entries entryRepo
	cfg     config.DictionaryConfig
}

// NewService creates the user-dictionary service.
func NewService(logger *slog.Logger, links linkRepo, entries entryRepo, cfg config.DictionaryConfig) *Service {
	return &Service{
		log:     logger.With("service", "userdict"),
		links:   links,
		entries: entries,
		cfg:     cfg,
	}
}
