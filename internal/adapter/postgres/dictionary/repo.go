// Package dictionary implements the DictionaryEntry repository using
// PostgreSQL. An entry aggregates its word, one-word definition, and owned
// examples and synonyms. Entries are immutable once created: the ingestion
// pipeline either writes the full mirrored pair or nothing.
package dictionary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Repo provides dictionary entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dictionary entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertDefinitionSQL = `
INSERT INTO word_definitions (id, text, language, created_at)
VALUES ($1, $2, $3, $4)`

// CreateDefinition inserts a one-word definition row.
func (r *Repo) CreateDefinition(ctx context.Context, def domain.WordDefinition) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now().UTC()
	}
	_, err := querier.Exec(ctx, insertDefinitionSQL, def.ID, def.Text, def.Language, def.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "word_definition", def.ID)
	}
	return nil
}

const insertEntrySQL = `
INSERT INTO dictionary_entries
    (id, word_id, definition_id, description_base, description_target,
     part_of_speech, difficulty, source, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// CreateEntry inserts a dictionary entry row. Word and definition rows must
// already exist; foreign keys enforce the ordering.
func (r *Repo) CreateEntry(ctx context.Context, e domain.DictionaryEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := querier.Exec(ctx, insertEntrySQL,
		e.ID, e.WordID, e.DefinitionID, e.DescriptionBase, e.DescriptionTarget,
		e.PartOfSpeech, e.Difficulty, e.Source, e.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "dictionary_entry", e.ID)
	}
	return nil
}

const insertExampleSQL = `
INSERT INTO examples (id, entry_id, sentence, position)
VALUES ($1, $2, $3, $4)`

const insertSynonymSQL = `
INSERT INTO synonyms (id, entry_id, text, language, position)
VALUES ($1, $2, $3, $4, $5)`

// CreateExamples inserts all example rows for one entry in a single batch.
func (r *Repo) CreateExamples(ctx context.Context, examples []domain.Example) error {
	if len(examples) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, ex := range examples {
		batch.Queue(insertExampleSQL, ex.ID, ex.EntryID, ex.Sentence, ex.Position)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range examples {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "example", uuid.Nil)
		}
	}
	return nil
}

// CreateSynonyms inserts all synonym rows for one entry in a single batch.
func (r *Repo) CreateSynonyms(ctx context.Context, synonyms []domain.Synonym) error {
	if len(synonyms) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, syn := range synonyms {
		batch.Queue(insertSynonymSQL, syn.ID, syn.EntryID, syn.Text, syn.Language, syn.Position)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range synonyms {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "synonym", uuid.Nil)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getEntrySQL = `
SELECT
    e.id, e.word_id, e.definition_id, e.description_base, e.description_target,
    e.part_of_speech, e.difficulty, e.source, e.created_at,
    w.id, w.text, w.text_normalized, w.language, w.phonetic, w.created_at,
    d.id, d.text, d.language, d.created_at
FROM dictionary_entries e
JOIN words w ON w.id = e.word_id
JOIN word_definitions d ON d.id = e.definition_id
WHERE e.id = $1`

// GetByID returns one entry with its word, definition, examples, and synonyms.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.DictionaryEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getEntrySQL, entryID)

	entry, err := scanEntryRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "dictionary_entry", entryID)
	}

	if err := r.loadChildren(ctx, []*domain.DictionaryEntry{entry}); err != nil {
		return nil, err
	}

	return entry, nil
}

const getEntriesByIDsSQL = `
SELECT
    e.id, e.word_id, e.definition_id, e.description_base, e.description_target,
    e.part_of_speech, e.difficulty, e.source, e.created_at,
    w.id, w.text, w.text_normalized, w.language, w.phonetic, w.created_at,
    d.id, d.text, d.language, d.created_at
FROM dictionary_entries e
JOIN words w ON w.id = e.word_id
JOIN word_definitions d ON d.id = e.definition_id
WHERE e.id = ANY($1::uuid[])`

// GetByIDs returns entries with words and definitions for a batch of IDs,
// with examples and synonyms loaded. Missing IDs are silently absent.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DictionaryEntry, error) {
	if len(ids) == 0 {
		return []domain.DictionaryEntry{}, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getEntriesByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get entries by ids: %w", err)
	}
	defer rows.Close()

	var entries []domain.DictionaryEntry
	var refs []*domain.DictionaryEntry
	for rows.Next() {
		e, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("get entries by ids: %w", scanErr)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get entries by ids: %w", err)
	}

	for i := range entries {
		refs = append(refs, &entries[i])
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []domain.DictionaryEntry{}
	}
	return entries, nil
}

const getExamplesSQL = `
SELECT id, entry_id, sentence, position
FROM examples
WHERE entry_id = ANY($1::uuid[])
ORDER BY entry_id, position`

const getSynonymsSQL = `
SELECT id, entry_id, text, language, position
FROM synonyms
WHERE entry_id = ANY($1::uuid[])
ORDER BY entry_id, position`

// loadChildren fetches examples and synonyms for the given entries and
// attaches them in position order.
func (r *Repo) loadChildren(ctx context.Context, entries []*domain.DictionaryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, len(entries))
	byID := make(map[uuid.UUID]*domain.DictionaryEntry, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	rows, err := querier.Query(ctx, getExamplesSQL, ids)
	if err != nil {
		return fmt.Errorf("load examples: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ex domain.Example
		if err := rows.Scan(&ex.ID, &ex.EntryID, &ex.Sentence, &ex.Position); err != nil {
			return fmt.Errorf("load examples: %w", err)
		}
		if e, ok := byID[ex.EntryID]; ok {
			e.Examples = append(e.Examples, ex)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load examples: %w", err)
	}

	synRows, err := querier.Query(ctx, getSynonymsSQL, ids)
	if err != nil {
		return fmt.Errorf("load synonyms: %w", err)
	}
	defer synRows.Close()
	for synRows.Next() {
		var syn domain.Synonym
		if err := synRows.Scan(&syn.ID, &syn.EntryID, &syn.Text, &syn.Language, &syn.Position); err != nil {
			return fmt.Errorf("load synonyms: %w", err)
		}
		if e, ok := byID[syn.EntryID]; ok {
			e.Synonyms = append(e.Synonyms, syn)
		}
	}
	if err := synRows.Err(); err != nil {
		return fmt.Errorf("load synonyms: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEntryRow(row pgx.Row) (*domain.DictionaryEntry, error) {
	var e domain.DictionaryEntry
	var w domain.Word
	var d domain.WordDefinition

	if err := row.Scan(
		&e.ID, &e.WordID, &e.DefinitionID, &e.DescriptionBase, &e.DescriptionTarget,
		&e.PartOfSpeech, &e.Difficulty, &e.Source, &e.CreatedAt,
		&w.ID, &w.Text, &w.TextNormalized, &w.Language, &w.Phonetic, &w.CreatedAt,
		&d.ID, &d.Text, &d.Language, &d.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Word = &w
	e.Definition = &d
	return &e, nil
}
