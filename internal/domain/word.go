package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a language-scoped lexical unit. Unique per (text_normalized, language).
// Words are shared across dictionary entries and are never deleted by ingestion.
type Word struct {
	ID             uuid.UUID
	Text           string
	TextNormalized string
	Language       Language
	Phonetic       string
	CreatedAt      time.Time
}

// WordDefinition is a language-scoped one-word gloss referenced by a dictionary entry.
type WordDefinition struct {
	ID        uuid.UUID
	Text      string
	Language  Language
	CreatedAt time.Time
}

// DictionaryEntry is one language-direction's view of an ingested word pair.
// Each successful ingestion produces exactly two mirrored entries: one keyed to
// the target-language word and one keyed to the base-language word.
type DictionaryEntry struct {
	ID           uuid.UUID
	WordID       uuid.UUID
	DefinitionID uuid.UUID
	// DescriptionBase and DescriptionTarget are the full descriptions in the
	// ingestion's base and target language. The pair is identical on both
	// mirror entries.
	DescriptionBase   string
	DescriptionTarget string
	PartOfSpeech      PartOfSpeech
	Difficulty        DifficultyLevel
	Source            Source
	CreatedAt         time.Time

	Word       *Word
	Definition *WordDefinition
	Examples   []Example
	Synonyms   []Synonym
}

// Example is an example sentence owned by exactly one dictionary entry.
type Example struct {
	ID       uuid.UUID
	EntryID  uuid.UUID
	Sentence string
	Position int
}

// Synonym is a synonym owned by exactly one dictionary entry, scoped to a language.
type Synonym struct {
	ID       uuid.UUID
	EntryID  uuid.UUID
	Text     string
	Language Language
	Position int
}

// UserDictionaryLink associates a user with a dictionary entry. Many users can
// share the same entry; the link's lifecycle is independent of the entry's.
type UserDictionaryLink struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	EntryID uuid.UUID

	Status       LearningStatus
	IntervalDays int
	EaseFactor   float64
	LearningStep int
	NextReviewAt *time.Time
	ReviewedAt   *time.Time
	CreatedAt    time.Time
}
