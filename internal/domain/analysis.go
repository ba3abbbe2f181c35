package domain

import "fmt"

// List-size bounds of the analysis contract.
const (
	MinAnalysisExamples = 1
	MaxAnalysisExamples = 3
	MinAnalysisSynonyms = 1
	MaxAnalysisSynonyms = 6
)

// WordAnalysis is the structured result of analyzing one candidate word for a
// base/target language pair. It is transient: consumed once by allocation and
// never persisted directly.
type WordAnalysis struct {
	IsCorrect bool
	IsWord    bool

	BaseLanguage   Language
	TargetLanguage Language

	WordInBaseLanguage   string
	WordInTargetLanguage string

	OneWordDefinitionInBaseLanguage   string
	OneWordDefinitionInTargetLanguage string

	DescriptionInBaseLanguage   string
	DescriptionInTargetLanguage string

	ExamplesInBaseLanguage   []string
	ExamplesInTargetLanguage []string

	SynonymsInBaseLanguage   []string
	SynonymsInTargetLanguage []string

	PhoneticInBaseLanguage   string
	PhoneticInTargetLanguage string

	PartOfSpeechInBaseLanguage   PartOfSpeech
	PartOfSpeechInTargetLanguage PartOfSpeech

	Difficulty DifficultyLevel
	Source     Source
}

// Validate checks the field-completeness contract: every scalar field must be
// non-empty and every list must hold between its documented minimum and maximum.
// Violations wrap ErrIncompleteAnalysis.
func (a *WordAnalysis) Validate() error {
	scalars := []struct {
		name  string
		value string
	}{
		{"wordInBaseLanguage", a.WordInBaseLanguage},
		{"wordInTargetLanguage", a.WordInTargetLanguage},
		{"oneWordDefinitionInBaseLanguage", a.OneWordDefinitionInBaseLanguage},
		{"oneWordDefinitionInTargetLanguage", a.OneWordDefinitionInTargetLanguage},
		{"descriptionInBaseLanguage", a.DescriptionInBaseLanguage},
		{"descriptionInTargetLanguage", a.DescriptionInTargetLanguage},
		{"phoneticInBaseLanguage", a.PhoneticInBaseLanguage},
		{"phoneticInTargetLanguage", a.PhoneticInTargetLanguage},
	}
	for _, s := range scalars {
		if s.value == "" {
			return fmt.Errorf("%s is empty: %w", s.name, ErrIncompleteAnalysis)
		}
	}

	lists := []struct {
		name     string
		values   []string
		min, max int
	}{
		{"examplesInBaseLanguage", a.ExamplesInBaseLanguage, MinAnalysisExamples, MaxAnalysisExamples},
		{"examplesInTargetLanguage", a.ExamplesInTargetLanguage, MinAnalysisExamples, MaxAnalysisExamples},
		{"synonymsInBaseLanguage", a.SynonymsInBaseLanguage, MinAnalysisSynonyms, MaxAnalysisSynonyms},
		{"synonymsInTargetLanguage", a.SynonymsInTargetLanguage, MinAnalysisSynonyms, MaxAnalysisSynonyms},
	}
	for _, l := range lists {
		if len(l.values) < l.min || len(l.values) > l.max {
			return fmt.Errorf("%s has %d items (want %d-%d): %w",
				l.name, len(l.values), l.min, l.max, ErrIncompleteAnalysis)
		}
		for i, v := range l.values {
			if v == "" {
				return fmt.Errorf("%s[%d] is empty: %w", l.name, i, ErrIncompleteAnalysis)
			}
		}
	}

	if !a.BaseLanguage.IsValid() {
		return fmt.Errorf("baseLanguage %q: %w", a.BaseLanguage, ErrIncompleteAnalysis)
	}
	if !a.TargetLanguage.IsValid() {
		return fmt.Errorf("targetLanguage %q: %w", a.TargetLanguage, ErrIncompleteAnalysis)
	}
	if !a.PartOfSpeechInBaseLanguage.IsValid() {
		return fmt.Errorf("partOfSpeechInBaseLanguage %q: %w", a.PartOfSpeechInBaseLanguage, ErrIncompleteAnalysis)
	}
	if !a.PartOfSpeechInTargetLanguage.IsValid() {
		return fmt.Errorf("partOfSpeechInTargetLanguage %q: %w", a.PartOfSpeechInTargetLanguage, ErrIncompleteAnalysis)
	}
	if !a.Difficulty.IsValid() {
		return fmt.Errorf("difficultyLevel %q: %w", a.Difficulty, ErrIncompleteAnalysis)
	}

	return nil
}
