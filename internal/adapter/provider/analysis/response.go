package analysis

import (
	"fmt"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// analysisPayload is the wire shape of the model's JSON answer.
type analysisPayload struct {
	IsCorrect bool `json:"isCorrect"`
	IsWord    bool `json:"isWord"`

	BaseLanguage   string `json:"baseLanguage"`
	TargetLanguage string `json:"targetLanguage"`

	WordInBaseLanguage   string `json:"wordInBaseLanguage"`
	WordInTargetLanguage string `json:"wordInTargetLanguage"`

	OneWordDefinitionInBaseLanguage   string `json:"oneWordDefinitionInBaseLanguage"`
	OneWordDefinitionInTargetLanguage string `json:"oneWordDefinitionInTargetLanguage"`

	FillWordDescriptionInBaseLanguage   string `json:"fillWordDescriptionInBaseLanguage"`
	FillWordDescriptionInTargetLanguage string `json:"fillWordDescriptionInTargetLanguage"`

	ExamplesInBaseLanguage   []string `json:"examplesInBaseLanguage"`
	ExamplesInTargetLanguage []string `json:"examplesInTargetLanguage"`

	SynonymsInBaseLanguage   []string `json:"synonymsInBaseLanguage"`
	SynonymsInTargetLanguage []string `json:"synonymsInTargetLanguage"`

	PhoneticSpellingInBaseLanguage   string `json:"phoneticSpellingInBaseLanguage"`
	PhoneticSpellingInTargetLanguage string `json:"phoneticSpellingInTargetLanguage"`

	PartOfSpeechInBaseLanguage   string `json:"partOfSpeechInBaseLanguage"`
	PartOfSpeechInTargetLanguage string `json:"partOfSpeechInTargetLanguage"`

	DifficultyLevel string `json:"difficultyLevel"`
	Source          string `json:"source"`
}

// toDomain converts the payload to a validated domain.WordAnalysis.
// The rejection flags are checked before the completeness contract so that a
// deliberate refusal (empty fields, isWord=false) maps to ErrAnalysisRejected
// rather than ErrIncompleteAnalysis.
func (p *analysisPayload) toDomain(base, target domain.Language) (*domain.WordAnalysis, error) {
	if !p.IsCorrect || !p.IsWord {
		return nil, fmt.Errorf("not a valid word for %s/%s: %w", base, target, domain.ErrAnalysisRejected)
	}

	a := &domain.WordAnalysis{
		IsCorrect:      p.IsCorrect,
		IsWord:         p.IsWord,
		BaseLanguage:   base,
		TargetLanguage: target,

		WordInBaseLanguage:   p.WordInBaseLanguage,
		WordInTargetLanguage: p.WordInTargetLanguage,

		OneWordDefinitionInBaseLanguage:   p.OneWordDefinitionInBaseLanguage,
		OneWordDefinitionInTargetLanguage: p.OneWordDefinitionInTargetLanguage,

		DescriptionInBaseLanguage:   p.FillWordDescriptionInBaseLanguage,
		DescriptionInTargetLanguage: p.FillWordDescriptionInTargetLanguage,

		ExamplesInBaseLanguage:   p.ExamplesInBaseLanguage,
		ExamplesInTargetLanguage: p.ExamplesInTargetLanguage,

		SynonymsInBaseLanguage:   p.SynonymsInBaseLanguage,
		SynonymsInTargetLanguage: p.SynonymsInTargetLanguage,

		PhoneticInBaseLanguage:   p.PhoneticSpellingInBaseLanguage,
		PhoneticInTargetLanguage: p.PhoneticSpellingInTargetLanguage,

		PartOfSpeechInBaseLanguage:   domain.PartOfSpeech(p.PartOfSpeechInBaseLanguage),
		PartOfSpeechInTargetLanguage: domain.PartOfSpeech(p.PartOfSpeechInTargetLanguage),

		Difficulty: domain.DifficultyLevel(p.DifficultyLevel),
		Source:     domain.SourceAIGenerated,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}
