// Package user implements the User repository using PostgreSQL, covering
// accounts, per-user settings, and aggregate learning-progress counters.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

const createUserSQL = `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`

const createSettingsSQL = `
INSERT INTO user_settings (user_id, base_language, target_language, daily_goal, voice, theme, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const createProgressSQL = `
INSERT INTO learning_progress (user_id, words_added, words_learned, reviews_done, updated_at)
VALUES ($1, 0, 0, 0, $2)`

// Create inserts a user together with default settings and zeroed progress
// counters. Returns domain.ErrAlreadyExists on a duplicate email.
func (r *Repo) Create(ctx context.Context, u domain.User, settings domain.UserSettings) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC()

	if _, err := querier.Exec(ctx, createUserSQL, u.ID, u.Email, u.PasswordHash, u.CreatedAt); err != nil {
		return postgres.MapError(err, "user", u.Email)
	}
	if _, err := querier.Exec(ctx, createSettingsSQL,
		u.ID, settings.BaseLanguage, settings.TargetLanguage, settings.DailyGoal,
		settings.Voice, settings.Theme, now); err != nil {
		return postgres.MapError(err, "user_settings", u.ID)
	}
	if _, err := querier.Exec(ctx, createProgressSQL, u.ID, now); err != nil {
		return postgres.MapError(err, "learning_progress", u.ID)
	}
	return nil
}

const getByEmailSQL = `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = $1`

// GetByEmail returns a user by email. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return &u, nil
}

const getByIDSQL = `
SELECT id, email, password_hash, created_at
FROM users
WHERE id = $1`

// GetByID returns a user by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByIDSQL, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

const getSettingsSQL = `
SELECT user_id, base_language, target_language, daily_goal, voice, theme, updated_at
FROM user_settings
WHERE user_id = $1`

// GetSettings returns the user's settings. Returns domain.ErrNotFound if absent.
func (r *Repo) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, getSettingsSQL, userID).
		Scan(&s.UserID, &s.BaseLanguage, &s.TargetLanguage, &s.DailyGoal, &s.Voice, &s.Theme, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}
	return &s, nil
}

const updateSettingsSQL = `
UPDATE user_settings
SET base_language = $2, target_language = $3, daily_goal = $4, voice = $5,
    theme = $6, updated_at = $7
WHERE user_id = $1
RETURNING user_id, base_language, target_language, daily_goal, voice, theme, updated_at`

// UpdateSettings overwrites the user's settings and returns the stored row.
func (r *Repo) UpdateSettings(ctx context.Context, userID uuid.UUID, s domain.UserSettings) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.UserSettings
	err := querier.QueryRow(ctx, updateSettingsSQL,
		userID, s.BaseLanguage, s.TargetLanguage, s.DailyGoal, s.Voice, s.Theme, time.Now().UTC()).
		Scan(&out.UserID, &out.BaseLanguage, &out.TargetLanguage, &out.DailyGoal, &out.Voice, &out.Theme, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Progress counters
// ---------------------------------------------------------------------------

const getProgressSQL = `
SELECT user_id, words_added, words_learned, reviews_done, updated_at
FROM learning_progress
WHERE user_id = $1`

// GetProgress returns the user's aggregate counters.
func (r *Repo) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.LearningProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.LearningProgress
	err := querier.QueryRow(ctx, getProgressSQL, userID).
		Scan(&p.UserID, &p.WordsAdded, &p.WordsLearned, &p.ReviewsDone, &p.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "learning_progress", userID)
	}
	return &p, nil
}

const bumpProgressSQL = `
UPDATE learning_progress
SET words_added   = words_added + $2,
    words_learned = words_learned + $3,
    reviews_done  = reviews_done + $4,
    updated_at    = $5
WHERE user_id = $1`

// IncrementProgress adds the given deltas to the user's counters. Counters
// are monotonic; callers pass zero for fields they do not touch.
func (r *Repo) IncrementProgress(ctx context.Context, userID uuid.UUID, wordsAdded, wordsLearned, reviewsDone int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, bumpProgressSQL,
		userID, wordsAdded, wordsLearned, reviewsDone, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "learning_progress", userID)
	}
	return nil
}
