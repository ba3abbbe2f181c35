// Package word implements the Word repository using PostgreSQL.
// Words are shared, language-scoped lexical units; uniqueness of
// (text_normalized, language) is enforced by the words_text_language_key
// constraint and resolved through an upsert.
package word

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getOrCreateSQL = `
INSERT INTO words (id, text, text_normalized, language, phonetic, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (text_normalized, language)
DO UPDATE SET phonetic = EXCLUDED.phonetic
RETURNING id, text, text_normalized, language, phonetic, created_at`

// GetOrCreate inserts a word or returns the existing row for the same
// (text_normalized, language) pair. Race resolution policy: last writer wins
// on the phonetic field; text, language, and id of the existing row are kept.
// Two concurrent calls for the same pair both resolve to the same row.
func (r *Repo) GetOrCreate(ctx context.Context, w domain.Word) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	w.TextNormalized = domain.NormalizeText(w.Text)

	row := querier.QueryRow(ctx, getOrCreateSQL,
		w.ID, w.Text, w.TextNormalized, w.Language, w.Phonetic, w.CreatedAt)

	var out domain.Word
	if err := row.Scan(&out.ID, &out.Text, &out.TextNormalized, &out.Language, &out.Phonetic, &out.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "word", w.Text)
	}

	return &out, nil
}

const getByIDSQL = `
SELECT id, text, text_normalized, language, phonetic, created_at
FROM words
WHERE id = $1`

// GetByID returns a word by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	var out domain.Word
	if err := row.Scan(&out.ID, &out.Text, &out.TextNormalized, &out.Language, &out.Phonetic, &out.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "word", id)
	}

	return &out, nil
}

const getByTextSQL = `
SELECT id, text, text_normalized, language, phonetic, created_at
FROM words
WHERE text_normalized = $1 AND language = $2`

// GetByText returns a word by normalized text and language.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByText(ctx context.Context, textNormalized string, lang domain.Language) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByTextSQL, textNormalized, lang)

	var out domain.Word
	if err := row.Scan(&out.ID, &out.Text, &out.TextNormalized, &out.Language, &out.Phonetic, &out.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "word", textNormalized)
	}

	return &out, nil
}
