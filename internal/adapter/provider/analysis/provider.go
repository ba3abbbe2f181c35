// Package analysis implements the word-analysis provider on top of the
// Anthropic Messages API. Given a candidate word and a language pair it
// returns a complete domain.WordAnalysis, or one of the analysis errors.
// The provider never writes to storage.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// Provider requests word analyses from the Anthropic API.
type Provider struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewProvider creates an analysis provider.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	return &Provider{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logger.With("adapter", "analysis"),
	}
}

// Analyze requests an analysis of word for the base/target language pair.
//
// Error classification:
//   - domain.ErrValidation — bad input (empty word, unsupported language)
//   - domain.ErrAnalysisRejected — the model judged the input not a valid word
//   - domain.ErrAnalysisUnavailable — network/provider failure
//   - domain.ErrIncompleteAnalysis — response violates the field contract
//
// None of these are retried here; the caller decides.
func (p *Provider) Analyze(ctx context.Context, word string, base, target domain.Language) (*domain.WordAnalysis, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	if !base.IsValid() {
		return nil, domain.NewValidationError("base_language", "unsupported")
	}
	if !target.IsValid() {
		return nil, domain.NewValidationError("target_language", "unsupported")
	}
	if base == target {
		return nil, domain.NewValidationError("target_language", "must differ from base language")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := buildPrompt(word, base, target)

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		p.log.ErrorContext(ctx, "analysis request failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("analyze %q: %v: %w", word, err, domain.ErrAnalysisUnavailable)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("analyze %q: empty response: %w", word, domain.ErrAnalysisUnavailable)
	}

	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %v: %w", word, err, domain.ErrIncompleteAnalysis)
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("analyze %q: decode response: %v: %w", word, err, domain.ErrIncompleteAnalysis)
	}

	result, err := payload.toDomain(base, target)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", word, err)
	}

	p.log.DebugContext(ctx, "analysis complete",
		slog.String("word", word),
		slog.String("base", base.String()),
		slog.String("target", target.String()),
		slog.String("difficulty", result.Difficulty.String()),
	)

	return result, nil
}

// buildPrompt creates the analysis prompt for one candidate word.
func buildPrompt(word string, base, target domain.Language) string {
	return fmt.Sprintf(`You are a professional bilingual dictionary editor.

Analyze the word %q for a learner whose native language is %q and who is learning %q.
The word may be given in either language.

Output ONLY a valid JSON object matching this exact schema:
{
  "isCorrect": <true if the input is spelled correctly>,
  "isWord": <true if the input is a real word in either language>,
  "baseLanguage": "%s",
  "targetLanguage": "%s",
  "wordInBaseLanguage": "<the word in the base language>",
  "wordInTargetLanguage": "<the word in the target language>",
  "oneWordDefinitionInBaseLanguage": "<single-word gloss in the base language>",
  "oneWordDefinitionInTargetLanguage": "<single-word gloss in the target language>",
  "fillWordDescriptionInBaseLanguage": "<one-sentence description in the base language>",
  "fillWordDescriptionInTargetLanguage": "<one-sentence description in the target language>",
  "examplesInBaseLanguage": ["<1-3 example sentences in the base language>"],
  "examplesInTargetLanguage": ["<1-3 example sentences in the target language>"],
  "synonymsInBaseLanguage": ["<1-6 synonyms in the base language>"],
  "synonymsInTargetLanguage": ["<1-6 synonyms in the target language>"],
  "phoneticSpellingInBaseLanguage": "<phonetic spelling>",
  "phoneticSpellingInTargetLanguage": "<phonetic spelling>",
  "partOfSpeechInBaseLanguage": "<NOUN|VERB|ADJECTIVE|ADVERB|PRONOUN|PREPOSITION|CONJUNCTION|INTERJECTION|PHRASE|IDIOM|OTHER>",
  "partOfSpeechInTargetLanguage": "<same value set>",
  "difficultyLevel": "<A1|A2|B1|B2|C1|C2>",
  "source": "ai_generated"
}

Rules:
- If the input is misspelled or not a real word, set isCorrect/isWord to false and leave the other fields empty
- Every list must respect its documented size range
- Output ONLY the JSON, no markdown, no explanations`,
		word, base, target, base, target)
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
