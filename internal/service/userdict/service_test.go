package userdict

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

type mockLinkRepo struct {
	findFn    func(ctx context.Context, userID uuid.UUID, filter userdict.Filter) ([]domain.UserDictionaryLink, int, error)
	getByIDFn func(ctx context.Context, userID, linkID uuid.UUID) (*domain.UserDictionaryLink, error)
	unlinkFn  func(ctx context.Context, userID, entryID uuid.UUID) error
}

func (m *mockLinkRepo) Find(ctx context.Context, userID uuid.UUID, filter userdict.Filter) ([]domain.UserDictionaryLink, int, error) {
	return m.findFn(ctx, userID, filter)
}

func (m *mockLinkRepo) GetByID(ctx context.Context, userID, linkID uuid.UUID) (*domain.UserDictionaryLink, error) {
	return m.getByIDFn(ctx, userID, linkID)
}

func (m *mockLinkRepo) Unlink(ctx context.Context, userID, entryID uuid.UUID) error {
	return m.unlinkFn(ctx, userID, entryID)
}

type mockEntryRepo struct {
	getByIDFn  func(ctx context.Context, entryID uuid.UUID) (*domain.DictionaryEntry, error)
	getByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]domain.DictionaryEntry, error)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.DictionaryEntry, error) {
	return m.getByIDFn(ctx, entryID)
}

func (m *mockEntryRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DictionaryEntry, error) {
	return m.getByIDsFn(ctx, ids)
}

func testDictConfig() config.DictionaryConfig {
	return config.DictionaryConfig{
		MaxWordLength:     100,
		DefaultEaseFactor: 2.5,
		PageSizeDefault:   50,
		PageSizeMax:       200,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newService(links *mockLinkRepo, entries *mockEntryRepo) *Service {
	return NewService(testLogger(), links, entries, testDictConfig())
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func TestListReturnsCardsWithEntries(t *testing.T) {
	userID := uuid.New()
	entryA, entryB := uuid.New(), uuid.New()

	links := &mockLinkRepo{
		findFn: func(_ context.Context, gotUser uuid.UUID, filter userdict.Filter) ([]domain.UserDictionaryLink, int, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, 50, filter.Limit, "zero limit falls back to the default page size")
			return []domain.UserDictionaryLink{
				{ID: uuid.New(), UserID: userID, EntryID: entryA},
				{ID: uuid.New(), UserID: userID, EntryID: entryB},
			}, 17, nil
		},
	}
	entries := &mockEntryRepo{
		getByIDsFn: func(_ context.Context, ids []uuid.UUID) ([]domain.DictionaryEntry, error) {
			assert.ElementsMatch(t, []uuid.UUID{entryA, entryB}, ids)
			return []domain.DictionaryEntry{{ID: entryA}, {ID: entryB}}, nil
		},
	}

	res, err := newService(links, entries).List(authedCtx(userID), ListInput{})
	require.NoError(t, err)

	assert.Equal(t, 17, res.Total)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, entryA, res.Cards[0].Entry.ID)
	assert.Equal(t, entryB, res.Cards[1].Entry.ID)
}

func TestListSkipsLinksWithMissingEntries(t *testing.T) {
	userID := uuid.New()
	entryA, entryGone := uuid.New(), uuid.New()

	links := &mockLinkRepo{
		findFn: func(_ context.Context, _ uuid.UUID, _ userdict.Filter) ([]domain.UserDictionaryLink, int, error) {
			return []domain.UserDictionaryLink{
				{ID: uuid.New(), EntryID: entryA},
				{ID: uuid.New(), EntryID: entryGone},
			}, 2, nil
		},
	}
	entries := &mockEntryRepo{
		getByIDsFn: func(_ context.Context, _ []uuid.UUID) ([]domain.DictionaryEntry, error) {
			return []domain.DictionaryEntry{{ID: entryA}}, nil
		},
	}

	res, err := newService(links, entries).List(authedCtx(userID), ListInput{})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, entryA, res.Cards[0].Entry.ID)
}

func TestListClampsLimit(t *testing.T) {
	userID := uuid.New()

	var gotLimit int
	links := &mockLinkRepo{
		findFn: func(_ context.Context, _ uuid.UUID, filter userdict.Filter) ([]domain.UserDictionaryLink, int, error) {
			gotLimit = filter.Limit
			return nil, 0, nil
		},
	}

	svc := newService(links, &mockEntryRepo{})
	_, err := svc.List(authedCtx(userID), ListInput{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, 200, gotLimit)
}

func TestListValidation(t *testing.T) {
	userID := uuid.New()
	svc := newService(&mockLinkRepo{}, &mockEntryRepo{})

	bad := domain.Language("xx")
	_, err := svc.List(authedCtx(userID), ListInput{Language: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.List(authedCtx(userID), ListInput{Offset: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListUnauthorized(t *testing.T) {
	svc := newService(&mockLinkRepo{}, &mockEntryRepo{})
	_, err := svc.List(context.Background(), ListInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGet(t *testing.T) {
	userID := uuid.New()
	linkID, entryID := uuid.New(), uuid.New()

	links := &mockLinkRepo{
		getByIDFn: func(_ context.Context, gotUser, gotLink uuid.UUID) (*domain.UserDictionaryLink, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, linkID, gotLink)
			return &domain.UserDictionaryLink{ID: linkID, UserID: userID, EntryID: entryID}, nil
		},
	}
	entries := &mockEntryRepo{
		getByIDFn: func(_ context.Context, gotEntry uuid.UUID) (*domain.DictionaryEntry, error) {
			assert.Equal(t, entryID, gotEntry)
			return &domain.DictionaryEntry{ID: entryID}, nil
		},
	}

	card, err := newService(links, entries).Get(authedCtx(userID), linkID)
	require.NoError(t, err)
	assert.Equal(t, linkID, card.Link.ID)
	assert.Equal(t, entryID, card.Entry.ID)
}

func TestGetNotFound(t *testing.T) {
	links := &mockLinkRepo{
		getByIDFn: func(_ context.Context, _, _ uuid.UUID) (*domain.UserDictionaryLink, error) {
			return nil, domain.ErrNotFound
		},
	}

	_, err := newService(links, &mockEntryRepo{}).Get(authedCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnlink(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	var called bool
	links := &mockLinkRepo{
		unlinkFn: func(_ context.Context, gotUser, gotEntry uuid.UUID) error {
			called = true
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, entryID, gotEntry)
			return nil
		},
	}

	err := newService(links, &mockEntryRepo{}).Unlink(authedCtx(userID), entryID)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestUnlinkNotFound(t *testing.T) {
	links := &mockLinkRepo{
		unlinkFn: func(_ context.Context, _, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	err := newService(links, &mockEntryRepo{}).Unlink(authedCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnlinkPropagatesStorageError(t *testing.T) {
	boom := errors.New("pool closed")
	links := &mockLinkRepo{
		unlinkFn: func(_ context.Context, _, _ uuid.UUID) error { return boom },
	}

	err := newService(links, &mockEntryRepo{}).Unlink(authedCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, boom)
}
