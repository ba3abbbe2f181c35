// Package speechusage implements the synthesis-usage repository using PostgreSQL.
package speechusage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Repo provides synthesis-usage persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new speech-usage repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertUsageSQL = `
INSERT INTO speech_usage (id, user_id, text, language, char_count, synthesized_at)
VALUES ($1, $2, $3, $4, $5, now())`

// Record stores one billable synthesis call with its character cost.
func (r *Repo) Record(ctx context.Context, userID uuid.UUID, text string, lang domain.Language, chars int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertUsageSQL, uuid.New(), userID, text, lang, chars)
	if err != nil {
		return postgres.MapError(err, "speech_usage", userID)
	}
	return nil
}

const sumCharsSQL = `
SELECT COALESCE(SUM(char_count), 0)
FROM speech_usage
WHERE user_id = $1 AND synthesized_at >= $2`

// CharsSince returns the number of characters billed since the given instant.
func (r *Repo) CharsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, sumCharsSQL, userID, since).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "speech_usage", userID)
	}
	return n, nil
}
