package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

// IngestWord runs the full pipeline for one candidate word: analyze,
// allocate, persist atomically, link into the requesting user's dictionary.
//
// The write is all-or-nothing: both mirrored entries with all their children
// are committed together, or the store is left untouched. The user link is
// created after the commit and is idempotent.
func (s *Service) IngestWord(ctx context.Context, input IngestInput) (*Result, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxWordLength); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, input.Word, input.BaseLanguage, input.TargetLanguage)
	if err != nil {
		return nil, err
	}

	alloc, err := Allocate(analysis)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, alloc); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word pair ingested",
		slog.String("word", analysis.WordInTargetLanguage),
		slog.String("base", analysis.BaseLanguage.String()),
		slog.String("target", analysis.TargetLanguage.String()),
		slog.String("target_entry_id", alloc.Target.Entry.ID.String()),
		slog.String("base_entry_id", alloc.Base.Entry.ID.String()),
	)

	link, err := s.linkForUser(ctx, userID, alloc)
	if err != nil {
		return nil, err
	}

	return &Result{
		TargetEntryID: alloc.Target.Entry.ID,
		BaseEntryID:   alloc.Base.Entry.ID,
		LinkID:        link.ID,
	}, nil
}

// persist writes the allocation in one transaction, in dependency order:
// words, definitions, entries, then examples and synonyms.
func (s *Service) persist(ctx context.Context, alloc *Allocation) error {
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, ea := range []*EntryAllocation{&alloc.Target, &alloc.Base} {
			word, err := s.words.GetOrCreate(txCtx, ea.Word)
			if err != nil {
				return fmt.Errorf("upsert word %q: %w", ea.Word.Text, err)
			}
			ea.Word = *word
			ea.Entry.WordID = word.ID
		}

		for _, ea := range []*EntryAllocation{&alloc.Target, &alloc.Base} {
			if err := s.entries.CreateDefinition(txCtx, ea.Definition); err != nil {
				return fmt.Errorf("create definition: %w", err)
			}
			if err := s.entries.CreateEntry(txCtx, ea.Entry); err != nil {
				return fmt.Errorf("create entry: %w", err)
			}
			if err := s.entries.CreateExamples(txCtx, ea.Examples); err != nil {
				return fmt.Errorf("create examples: %w", err)
			}
			if err := s.entries.CreateSynonyms(txCtx, ea.Synonyms); err != nil {
				return fmt.Errorf("create synonyms: %w", err)
			}
		}

		return nil
	})

	return classifyWriteError(txErr)
}

// classifyWriteError maps a transactional write failure onto the caller-facing
// taxonomy. Word-level unique violations never reach here — the upsert absorbs
// them — so any ErrAlreadyExists is a genuine, retryable conflict. Context
// errors pass through unclassified.
func classifyWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domain.ErrAlreadyExists):
		return fmt.Errorf("%v: %w", err, domain.ErrStorageConflict)
	default:
		return fmt.Errorf("%v: %w", err, domain.ErrIngestionFailed)
	}
}

// linkForUser connects the user to the entry keyed to their configured target
// language (the entry presented to learners). Falls back to the ingestion's
// target entry when settings are unavailable or match neither side.
func (s *Service) linkForUser(ctx context.Context, userID uuid.UUID, alloc *Allocation) (*domain.UserDictionaryLink, error) {
	entryID := alloc.Target.Entry.ID

	settings, err := s.settings.GetSettings(ctx, userID)
	if err == nil && settings.TargetLanguage == alloc.Base.Word.Language {
		entryID = alloc.Base.Entry.ID
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return s.Link(ctx, userID, entryID)
}

// Link associates the user with a dictionary entry. Idempotent: re-linking an
// already linked entry returns the existing link and leaves the user's
// words-added counter untouched; a first-time link increments it.
func (s *Service) Link(ctx context.Context, userID, entryID uuid.UUID) (*domain.UserDictionaryLink, error) {
	link, created, err := s.links.Link(ctx, userID, entryID, s.cfg.DefaultEaseFactor)
	if err != nil {
		return nil, fmt.Errorf("link entry: %w", err)
	}

	if created {
		if err := s.progress.IncrementProgress(ctx, userID, 1, 0, 0); err != nil {
			return nil, fmt.Errorf("bump progress: %w", err)
		}
	}

	return link, nil
}
