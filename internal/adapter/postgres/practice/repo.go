// Package practice implements the review-log repository using PostgreSQL.
package practice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// ReviewRecord is one row of the practice history.
type ReviewRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	LinkID     uuid.UUID
	Grade      domain.ReviewGrade
	ReviewedAt time.Time
}

// Repo provides review-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new practice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertReviewSQL = `
INSERT INTO review_log (id, user_id, link_id, grade, reviewed_at)
VALUES ($1, $2, $3, $4, $5)`

// LogReview records one practice review.
func (r *Repo) LogReview(ctx context.Context, rec ReviewRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertReviewSQL,
		rec.ID, rec.UserID, rec.LinkID, rec.Grade, rec.ReviewedAt)
	if err != nil {
		return postgres.MapError(err, "review_log", rec.LinkID)
	}
	return nil
}

const countTodaySQL = `
SELECT COUNT(*)
FROM review_log
WHERE user_id = $1 AND reviewed_at >= $2`

// CountSince returns the number of reviews the user has done since the given
// instant (used for the daily-goal dashboard).
func (r *Repo) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, countTodaySQL, userID, since).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "review_log", userID)
	}
	return n, nil
}
