package practice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	practicerepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/practice"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

// ReviewResult is the outcome of grading one card.
type ReviewResult struct {
	Link         *domain.UserDictionaryLink
	PrevStatus   domain.LearningStatus
	NextReviewAt time.Time
}

// ReviewCard grades one due card and reschedules it. The state update, review
// log append and progress bump commit together; a failed review leaves the
// card untouched.
func (s *Service) ReviewCard(ctx context.Context, linkID uuid.UUID, grade domain.ReviewGrade) (*ReviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !grade.IsValid() {
		return nil, domain.NewValidationErrors([]domain.FieldError{
			{Field: "grade", Message: "unsupported"},
		})
	}

	link, err := s.links.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}

	if limited, err := s.dailyLimitReached(ctx, userID); err != nil {
		return nil, err
	} else if limited {
		return nil, fmt.Errorf("daily review limit %d: %w", s.cfg.ReviewsPerDay, domain.ErrQuotaExceeded)
	}

	now := s.now()
	out := CalculateSRS(SRSInput{
		CurrentStatus:   link.Status,
		CurrentInterval: link.IntervalDays,
		CurrentEase:     link.EaseFactor,
		LearningStep:    link.LearningStep,
		Grade:           grade,
		Now:             now,
		Config:          s.cfg,
	})

	prevStatus := link.Status
	link.Status = out.NewStatus
	link.IntervalDays = out.NewInterval
	link.EaseFactor = out.NewEase
	link.LearningStep = out.NewLearningStep
	link.NextReviewAt = &out.NextReviewAt
	link.ReviewedAt = &now

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.links.UpdateReviewState(txCtx, userID, *link); err != nil {
			return fmt.Errorf("update review state: %w", err)
		}
		if err := s.reviews.LogReview(txCtx, practicerepo.ReviewRecord{
			ID:         uuid.New(),
			UserID:     userID,
			LinkID:     link.ID,
			Grade:      grade,
			ReviewedAt: now,
		}); err != nil {
			return fmt.Errorf("log review: %w", err)
		}

		learned := 0
		if out.NewStatus == domain.LearningStatusMastered && prevStatus != domain.LearningStatusMastered {
			learned = 1
		}
		if err := s.progress.IncrementProgress(txCtx, userID, 0, learned, 1); err != nil {
			return fmt.Errorf("bump progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.String("link_id", link.ID.String()),
		slog.String("grade", grade.String()),
		slog.String("status", out.NewStatus.String()),
		slog.Int("interval_days", out.NewInterval),
	)

	return &ReviewResult{
		Link:         link,
		PrevStatus:   prevStatus,
		NextReviewAt: out.NextReviewAt,
	}, nil
}

// DueQueue returns the user's cards that are due for review, oldest first.
// New cards (never scheduled) are always part of the queue.
func (s *Service) DueQueue(ctx context.Context, limit int) ([]domain.UserDictionaryLink, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > s.cfg.ReviewsPerDay {
		limit = s.cfg.ReviewsPerDay
	}

	links, err := s.links.FindDue(ctx, userID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("find due: %w", err)
	}
	return links, nil
}

// dailyLimitReached reports whether the user already spent today's review
// budget. A non-positive ReviewsPerDay disables the limit.
func (s *Service) dailyLimitReached(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.cfg.ReviewsPerDay <= 0 {
		return false, nil
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.reviews.CountSince(ctx, userID, midnight)
	if err != nil {
		return false, fmt.Errorf("count reviews: %w", err)
	}
	return count >= s.cfg.ReviewsPerDay, nil
}
