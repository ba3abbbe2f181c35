// Package practice implements spaced-repetition study: grading reviews,
// scheduling the next repetition and serving the due queue.
package practice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	practicerepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/practice"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

type linkRepo interface {
	GetByID(ctx context.Context, userID, linkID uuid.UUID) (*domain.UserDictionaryLink, error)
	UpdateReviewState(ctx context.Context, userID uuid.UUID, link domain.UserDictionaryLink) error
	FindDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.UserDictionaryLink, error)
}

type reviewLog interface {
	LogReview(ctx context.Context, rec practicerepo.ReviewRecord) error
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type progressRepo interface {
	IncrementProgress(ctx context.Context, userID uuid.UUID, wordsAdded, wordsLearned, reviewsDone int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates study sessions.
type Service struct {
	log      *slog.Logger
	links    linkRepo
	reviews  reviewLog
	progress progressRepo
	tx       txManager
	cfg      config.SRSConfig

	now func() time.Time
}

// NewService creates the practice service.
func NewService(
	logger *slog.Logger,
	links linkRepo,
	reviews reviewLog,
	progress progressRepo,
	tx txManager,
	cfg config.SRSConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "practice"),
		links:    links,
		reviews:  reviews,
		progress: progress,
		tx:       tx,
		cfg:      cfg,
		now:      time.Now,
	}
}
