// Package ingestion implements the word ingestion pipeline: AI analysis of a
// candidate word, allocation of the analysis into two mirrored dictionary
// entries, atomic persistence, and linking the result into the requesting
// user's dictionary.
package ingestion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type analyzer interface {
	Analyze(ctx context.Context, word string, base, target domain.Language) (*domain.WordAnalysis, error)
}

type wordRepo interface {
	GetOrCreate(ctx context.Context, w domain.Word) (*domain.Word, error)
}

type entryRepo interface {
	CreateDefinition(ctx context.Context, def domain.WordDefinition) error
	CreateEntry(ctx context.Context, e domain.DictionaryEntry) error
	CreateExamples(ctx context.Context, examples []domain.Example) error
	CreateSynonyms(ctx context.Context, synonyms []domain.Synonym) error
}

type linkRepo interface {
	Link(ctx context.Context, userID, entryID uuid.UUID, easeFactor float64) (*domain.UserDictionaryLink, bool, error)
}

type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type progressRepo interface {
	IncrementProgress(ctx context.Context, userID uuid.UUID, wordsAdded, wordsLearned, reviewsDone int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service orchestrates word ingestion.
type Service struct {
	log      *slog.Logger
	analyzer analyzer
	words    wordRepo
	entries  entryRepo
	links    linkRepo
	settings settingsRepo
	progress progressRepo
	tx       txManager
	cfg      config.DictionaryConfig
}

// NewService creates the ingestion service.
func NewService(
	logger *slog.Logger,
	analyzer analyzer,
	words wordRepo,
	entries entryRepo,
	links linkRepo,
	settings settingsRepo,
	progress progressRepo,
	tx txManager,
	cfg config.DictionaryConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "ingestion"),
		analyzer: analyzer,
		words:    words,
		entries:  entries,
		links:    links,
		settings: settings,
		progress: progress,
		tx:       tx,
		cfg:      cfg,
	}
}
