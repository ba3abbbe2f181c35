package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

func validPayload() analysisPayload {
	return analysisPayload{
		IsCorrect:      true,
		IsWord:         true,
		BaseLanguage:   "ru",
		TargetLanguage: "en",

		WordInBaseLanguage:   "стул",
		WordInTargetLanguage: "chair",

		OneWordDefinitionInBaseLanguage:   "сиденье",
		OneWordDefinitionInTargetLanguage: "seat",

		FillWordDescriptionInBaseLanguage:   "Предмет мебели для сидения.",
		FillWordDescriptionInTargetLanguage: "A piece of furniture for sitting on.",

		ExamplesInBaseLanguage:   []string{"Он сел на стул."},
		ExamplesInTargetLanguage: []string{"He sat on the chair."},

		SynonymsInBaseLanguage:   []string{"табурет"},
		SynonymsInTargetLanguage: []string{"seat"},

		PhoneticSpellingInBaseLanguage:   "стул",
		PhoneticSpellingInTargetLanguage: "/tʃɛər/",

		PartOfSpeechInBaseLanguage:   "NOUN",
		PartOfSpeechInTargetLanguage: "NOUN",

		DifficultyLevel: "A1",
		Source:          "ai_generated",
	}
}

func TestExtractJSON(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		got, err := extractJSON(`{"a":1}`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, got)
	})

	t.Run("surrounded by prose", func(t *testing.T) {
		got, err := extractJSON("Here you go:\n```json\n{\"a\": {\"b\": 2}}\n```\nDone.")
		require.NoError(t, err)
		assert.Equal(t, `{"a": {"b": 2}}`, got)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := extractJSON("sorry, I cannot help")
		assert.Error(t, err)
	})

	t.Run("unbalanced", func(t *testing.T) {
		_, err := extractJSON("}{")
		assert.Error(t, err)
	})
}

func TestPayloadToDomain(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		p := validPayload()
		a, err := p.toDomain(domain.LanguageRussian, domain.LanguageEnglish)
		require.NoError(t, err)

		assert.Equal(t, "chair", a.WordInTargetLanguage)
		assert.Equal(t, "стул", a.WordInBaseLanguage)
		assert.Equal(t, "seat", a.OneWordDefinitionInTargetLanguage)
		assert.Equal(t, "сиденье", a.OneWordDefinitionInBaseLanguage)
		assert.Equal(t, "/tʃɛər/", a.PhoneticInTargetLanguage)
		assert.Equal(t, domain.PartOfSpeechNoun, a.PartOfSpeechInBaseLanguage)
		assert.Equal(t, domain.DifficultyA1, a.Difficulty)
		assert.Equal(t, domain.SourceAIGenerated, a.Source)
		assert.Equal(t, domain.LanguageRussian, a.BaseLanguage)
		assert.Equal(t, domain.LanguageEnglish, a.TargetLanguage)
	})

	t.Run("rejected when not a word", func(t *testing.T) {
		p := validPayload()
		p.IsWord = false
		_, err := p.toDomain(domain.LanguageRussian, domain.LanguageEnglish)
		assert.ErrorIs(t, err, domain.ErrAnalysisRejected)
	})

	t.Run("rejected when misspelled", func(t *testing.T) {
		p := validPayload()
		p.IsCorrect = false
		_, err := p.toDomain(domain.LanguageRussian, domain.LanguageEnglish)
		assert.ErrorIs(t, err, domain.ErrAnalysisRejected)
	})

	t.Run("incomplete when contract violated", func(t *testing.T) {
		p := validPayload()
		p.ExamplesInTargetLanguage = nil
		_, err := p.toDomain(domain.LanguageRussian, domain.LanguageEnglish)
		assert.ErrorIs(t, err, domain.ErrIncompleteAnalysis)
	})

	t.Run("rejection wins over incompleteness", func(t *testing.T) {
		// A refusal comes back with empty fields; it must not be
		// misclassified as a provider defect.
		p := analysisPayload{IsCorrect: false, IsWord: false}
		_, err := p.toDomain(domain.LanguageRussian, domain.LanguageEnglish)
		assert.ErrorIs(t, err, domain.ErrAnalysisRejected)
		assert.NotErrorIs(t, err, domain.ErrIncompleteAnalysis)
	})
}

func TestPayloadWireNames(t *testing.T) {
	raw := `{
		"isCorrect": true,
		"isWord": true,
		"wordInBaseLanguage": "стул",
		"wordInTargetLanguage": "chair",
		"oneWordDefinitionInBaseLanguage": "сиденье",
		"oneWordDefinitionInTargetLanguage": "seat",
		"fillWordDescriptionInBaseLanguage": "desc-base",
		"fillWordDescriptionInTargetLanguage": "desc-target",
		"examplesInTargetLanguage": ["He sat."],
		"synonymsInBaseLanguage": ["табурет"],
		"phoneticSpellingInTargetLanguage": "/tʃɛər/",
		"partOfSpeechInBaseLanguage": "NOUN",
		"difficultyLevel": "A1",
		"source": "ai_generated"
	}`

	var p analysisPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.True(t, p.IsCorrect)
	assert.Equal(t, "chair", p.WordInTargetLanguage)
	assert.Equal(t, "desc-target", p.FillWordDescriptionInTargetLanguage)
	assert.Equal(t, []string{"He sat."}, p.ExamplesInTargetLanguage)
	assert.Equal(t, "/tʃɛər/", p.PhoneticSpellingInTargetLanguage)
	assert.Equal(t, "A1", p.DifficultyLevel)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("chair", domain.LanguageRussian, domain.LanguageEnglish)

	assert.Contains(t, prompt, `"chair"`)
	assert.Contains(t, prompt, `"baseLanguage": "ru"`)
	assert.Contains(t, prompt, `"targetLanguage": "en"`)
	assert.Contains(t, prompt, "difficultyLevel")
	assert.True(t, strings.Contains(prompt, "ONLY the JSON"))
}
