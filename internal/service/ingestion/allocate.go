package ingestion

import (
	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// EntryAllocation holds the row descriptors for one language-direction's
// dictionary entry: the (not yet persisted) word it is keyed to, its one-word
// definition, the entry itself, and the entry's examples and synonyms.
// Entry.WordID is filled in by the coordinator after the word upsert.
type EntryAllocation struct {
	Word       domain.Word
	Definition domain.WordDefinition
	Entry      domain.DictionaryEntry
	Examples   []domain.Example
	Synonyms   []domain.Synonym
}

// Allocation is the full row set produced from one WordAnalysis: two mirrored
// entry allocations, one keyed to each language's word.
type Allocation struct {
	Target EntryAllocation
	Base   EntryAllocation
}

// Allocate maps a WordAnalysis into the row descriptors for two mirrored
// dictionary entries. Pure: no storage access, no clock, no logging. The
// mapping is deterministic up to the freshly generated row IDs.
//
// Returns ErrIncompleteAnalysis (and builds nothing) if the analysis violates
// the field-completeness contract.
func Allocate(a *domain.WordAnalysis) (*Allocation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	target := allocateEntry(entrySpec{
		word:         a.WordInTargetLanguage,
		wordLanguage: a.TargetLanguage,
		phonetic:     a.PhoneticInTargetLanguage,

		gloss:         a.OneWordDefinitionInBaseLanguage,
		glossLanguage: a.BaseLanguage,

		examples:         a.ExamplesInTargetLanguage,
		synonyms:         a.SynonymsInTargetLanguage,
		synonymsLanguage: a.TargetLanguage,

		// The part of speech is cross-assigned: the target-keyed entry
		// carries the base-language tag and vice versa. This mirrors the
		// convention of the upstream data set; do not swap.
		partOfSpeech: a.PartOfSpeechInBaseLanguage,

		descriptionBase:   a.DescriptionInBaseLanguage,
		descriptionTarget: a.DescriptionInTargetLanguage,
		difficulty:        a.Difficulty,
		source:            a.Source,
	})

	base := allocateEntry(entrySpec{
		word:         a.WordInBaseLanguage,
		wordLanguage: a.BaseLanguage,
		phonetic:     a.PhoneticInBaseLanguage,

		gloss:         a.OneWordDefinitionInTargetLanguage,
		glossLanguage: a.TargetLanguage,

		examples:         a.ExamplesInBaseLanguage,
		synonyms:         a.SynonymsInBaseLanguage,
		synonymsLanguage: a.BaseLanguage,

		partOfSpeech: a.PartOfSpeechInTargetLanguage,

		descriptionBase:   a.DescriptionInBaseLanguage,
		descriptionTarget: a.DescriptionInTargetLanguage,
		difficulty:        a.Difficulty,
		source:            a.Source,
	})

	return &Allocation{Target: target, Base: base}, nil
}

type entrySpec struct {
	word         string
	wordLanguage domain.Language
	phonetic     string

	gloss         string
	glossLanguage domain.Language

	examples         []string
	synonyms         []string
	synonymsLanguage domain.Language

	partOfSpeech      domain.PartOfSpeech
	descriptionBase   string
	descriptionTarget string
	difficulty        domain.DifficultyLevel
	source            domain.Source
}

func allocateEntry(spec entrySpec) EntryAllocation {
	entryID := uuid.New()
	definitionID := uuid.New()

	out := EntryAllocation{
		Word: domain.Word{
			Text:           spec.word,
			TextNormalized: domain.NormalizeText(spec.word),
			Language:       spec.wordLanguage,
			Phonetic:       spec.phonetic,
		},
		Definition: domain.WordDefinition{
			ID:       definitionID,
			Text:     spec.gloss,
			Language: spec.glossLanguage,
		},
		Entry: domain.DictionaryEntry{
			ID:                entryID,
			DefinitionID:      definitionID,
			DescriptionBase:   spec.descriptionBase,
			DescriptionTarget: spec.descriptionTarget,
			PartOfSpeech:      spec.partOfSpeech,
			Difficulty:        spec.difficulty,
			Source:            spec.source,
		},
	}

	for i, sentence := range spec.examples {
		out.Examples = append(out.Examples, domain.Example{
			ID:       uuid.New(),
			EntryID:  entryID,
			Sentence: sentence,
			Position: i,
		})
	}

	for i, text := range spec.synonyms {
		out.Synonyms = append(out.Synonyms, domain.Synonym{
			ID:       uuid.New(),
			EntryID:  entryID,
			Text:     text,
			Language: spec.synonymsLanguage,
			Position: i,
		})
	}

	return out
}
