// Package userdict implements the UserDictionaryLink repository using
// PostgreSQL. A link represents "this user is learning this sense of this
// word in this direction"; uniqueness of (user_id, entry_id) is enforced by
// the user_dictionary_user_entry_key constraint.
package userdict

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Repo provides user dictionary link persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user dictionary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const linkSQL = `
INSERT INTO user_dictionary
    (id, user_id, entry_id, status, interval_days, ease_factor, learning_step, created_at)
VALUES ($1, $2, $3, $4, 0, $5, 0, $6)
ON CONFLICT (user_id, entry_id) DO NOTHING`

const getLinkSQL = `
SELECT id, user_id, entry_id, status, interval_days, ease_factor, learning_step,
       next_review_at, reviewed_at, created_at
FROM user_dictionary
WHERE user_id = $1 AND entry_id = $2`

// Link associates a user with a dictionary entry. Idempotent: if the link
// already exists, the existing row is returned and created is false.
func (r *Repo) Link(ctx context.Context, userID, entryID uuid.UUID, easeFactor float64) (link *domain.UserDictionaryLink, created bool, err error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	tag, err := querier.Exec(ctx, linkSQL,
		id, userID, entryID, domain.LearningStatusNew, easeFactor, time.Now().UTC())
	if err != nil {
		return nil, false, postgres.MapError(err, "user_dictionary", entryID)
	}
	created = tag.RowsAffected() > 0

	row := querier.QueryRow(ctx, getLinkSQL, userID, entryID)
	out, err := scanLink(row)
	if err != nil {
		return nil, false, postgres.MapError(err, "user_dictionary", entryID)
	}

	return out, created, nil
}

const unlinkSQL = `
DELETE FROM user_dictionary
WHERE user_id = $1 AND entry_id = $2`

// Unlink removes a user's link to an entry. Returns domain.ErrNotFound if no
// link existed. The dictionary entry itself is untouched.
func (r *Repo) Unlink(ctx context.Context, userID, entryID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, unlinkSQL, userID, entryID)
	if err != nil {
		return postgres.MapError(err, "user_dictionary", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_dictionary %s: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

const updateReviewSQL = `
UPDATE user_dictionary
SET status = $3, interval_days = $4, ease_factor = $5, learning_step = $6,
    next_review_at = $7, reviewed_at = $8
WHERE user_id = $1 AND id = $2`

// UpdateReviewState persists the outcome of one practice review.
func (r *Repo) UpdateReviewState(ctx context.Context, userID uuid.UUID, link domain.UserDictionaryLink) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateReviewSQL,
		userID, link.ID, link.Status, link.IntervalDays, link.EaseFactor,
		link.LearningStep, link.NextReviewAt, link.ReviewedAt)
	if err != nil {
		return postgres.MapError(err, "user_dictionary", link.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_dictionary %s: %w", link.ID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Filter narrows and orders a user's link listing.
type Filter struct {
	Language   *domain.Language
	Difficulty *domain.DifficultyLevel
	Status     *domain.LearningStatus
	// Search performs ILIKE '%...%' on the linked word's normalized text.
	Search *string
	Limit  int
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Find returns a user's links newest-first with the linked entry IDs, plus
// the total count for pagination.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, filter Filter) ([]domain.UserDictionaryLink, int, error) {
	filter.normalize()
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	base := psql.Select().
		From("user_dictionary ud").
		Join("dictionary_entries e ON e.id = ud.entry_id").
		Join("words w ON w.id = e.word_id").
		Where(sq.Eq{"ud.user_id": userID})

	if filter.Language != nil {
		base = base.Where(sq.Eq{"w.language": *filter.Language})
	}
	if filter.Difficulty != nil {
		base = base.Where(sq.Eq{"e.difficulty": *filter.Difficulty})
	}
	if filter.Status != nil {
		base = base.Where(sq.Eq{"ud.status": *filter.Status})
	}
	if filter.Search != nil && *filter.Search != "" {
		base = base.Where(sq.ILike{"w.text_normalized": "%" + domain.NormalizeText(*filter.Search) + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count user links: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns("ud.id", "ud.user_id", "ud.entry_id", "ud.status", "ud.interval_days",
			"ud.ease_factor", "ud.learning_step", "ud.next_review_at", "ud.reviewed_at", "ud.created_at").
		OrderBy("ud.created_at DESC", "ud.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list user links: %w", err)
	}
	defer rows.Close()

	links, err := scanLinks(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list user links: %w", err)
	}

	return links, total, nil
}

const dueSQL = `
SELECT id, user_id, entry_id, status, interval_days, ease_factor, learning_step,
       next_review_at, reviewed_at, created_at
FROM user_dictionary
WHERE user_id = $1
  AND (status = 'NEW' OR next_review_at <= $2)
ORDER BY next_review_at NULLS FIRST, created_at
LIMIT $3`

// FindDue returns links due for practice at the given instant: never-reviewed
// links first, then links whose next review time has passed.
func (r *Repo) FindDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.UserDictionaryLink, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, dueSQL, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("find due links: %w", err)
	}
	defer rows.Close()

	links, err := scanLinks(rows)
	if err != nil {
		return nil, fmt.Errorf("find due links: %w", err)
	}
	return links, nil
}

const getByIDSQL = `
SELECT id, user_id, entry_id, status, interval_days, ease_factor, learning_step,
       next_review_at, reviewed_at, created_at
FROM user_dictionary
WHERE user_id = $1 AND id = $2`

// GetByID returns one link owned by the user. Returns domain.ErrNotFound
// if the link does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, linkID uuid.UUID) (*domain.UserDictionaryLink, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, userID, linkID)
	link, err := scanLink(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_dictionary", linkID)
	}
	return link, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanLink(row pgx.Row) (*domain.UserDictionaryLink, error) {
	var l domain.UserDictionaryLink
	if err := row.Scan(&l.ID, &l.UserID, &l.EntryID, &l.Status, &l.IntervalDays,
		&l.EaseFactor, &l.LearningStep, &l.NextReviewAt, &l.ReviewedAt, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLinks(rows pgx.Rows) ([]domain.UserDictionaryLink, error) {
	var links []domain.UserDictionaryLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if links == nil {
		links = []domain.UserDictionaryLink{}
	}
	return links, nil
}
