package userdict

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

// Card pairs a user link with the dictionary entry it points at.
type Card struct {
	Link  domain.UserDictionaryLink
	Entry domain.DictionaryEntry
}

// ListInput filters the user's dictionary.
type ListInput struct {
	Language   *domain.Language
	Difficulty *domain.DifficultyLevel
	Status     *domain.LearningStatus
	Search     *string
	Limit      int
	Offset     int
}

func (i *ListInput) validate() error {
	var errs []domain.FieldError

	if i.Language != nil && !i.Language.IsValid() {
		errs = append(errs, domain.FieldError{Field: "language", Message: "unsupported"})
	}
	if i.Difficulty != nil && !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "unsupported"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unsupported"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListResult is one page of the user's dictionary.
type ListResult struct {
	Cards []Card
	Total int
}

// List returns one page of the user's dictionary, newest links first, each
// card carrying the entry's full tree (word, definition, examples, synonyms).
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.PageSizeDefault
	}
	if limit > s.cfg.PageSizeMax {
		limit = s.cfg.PageSizeMax
	}

	links, total, err := s.links.Find(ctx, userID, userdict.Filter{
		Language:   input.Language,
		Difficulty: input.Difficulty,
		Status:     input.Status,
		Search:     input.Search,
		Limit:      limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}

	if len(links) == 0 {
		return &ListResult{Total: total}, nil
	}

	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.EntryID)
	}

	entries, err := s.entries.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	byID := make(map[uuid.UUID]domain.DictionaryEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	cards := make([]Card, 0, len(links))
	for _, l := range links {
		entry, ok := byID[l.EntryID]
		if !ok {
			// A link without its entry means a concurrent hard delete;
			// skip rather than fail the whole page.
			s.log.WarnContext(ctx, "link references missing entry",
				"link_id", l.ID.String(), "entry_id", l.EntryID.String())
			continue
		}
		cards = append(cards, Card{Link: l, Entry: entry})
	}

	return &ListResult{Cards: cards, Total: total}, nil
}

// Get returns one card by link ID.
func (s *Service) Get(ctx context.Context, linkID uuid.UUID) (*Card, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	link, err := s.links.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}

	entry, err := s.entries.GetByID(ctx, link.EntryID)
	if err != nil {
		return nil, fmt.Errorf("load entry: %w", err)
	}

	return &Card{Link: *link, Entry: *entry}, nil
}

// Unlink removes the user's association with an entry. The entry itself and
// other users' links stay intact. Unlinking an entry that was never linked
// returns ErrNotFound.
func (s *Service) Unlink(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.links.Unlink(ctx, userID, entryID); err != nil {
		return fmt.Errorf("unlink entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry unlinked", "entry_id", entryID.String())
	return nil
}
