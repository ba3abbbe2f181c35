package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered learner.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSettings holds per-user preferences synced by the settings service.
type UserSettings struct {
	UserID         uuid.UUID
	BaseLanguage   Language
	TargetLanguage Language
	DailyGoal      int
	Voice          string
	Theme          string
	UpdatedAt      time.Time
}

// LearningProgress holds aggregate per-user counters. WordsAdded is bumped by
// the dictionary linker; WordsLearned by practice when a link reaches MASTERED.
type LearningProgress struct {
	UserID       uuid.UUID
	WordsAdded   int
	WordsLearned int
	ReviewsDone  int
	UpdatedAt    time.Time
}
