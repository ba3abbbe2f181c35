//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	dictionaryrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/dictionary"
	practicerepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/practice"
	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/user"
	userdictrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	wordrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/word"
	authpkg "github.com/polyglotta/polyglotta-backend/internal/auth"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	authsvc "github.com/polyglotta/polyglotta-backend/internal/service/auth"
	"github.com/polyglotta/polyglotta-backend/internal/service/ingestion"
	"github.com/polyglotta/polyglotta-backend/internal/service/practice"
	settingssvc "github.com/polyglotta/polyglotta-backend/internal/service/settings"
	userdictsvc "github.com/polyglotta/polyglotta-backend/internal/service/userdict"
	"github.com/polyglotta/polyglotta-backend/internal/transport/middleware"
	"github.com/polyglotta/polyglotta-backend/internal/transport/rest"
)

// stubAnalyzer replaces the AI provider with canned analyses keyed by word.
type stubAnalyzer struct {
	analyses map[string]*domain.WordAnalysis
	err      error
}

func (s *stubAnalyzer) Analyze(_ context.Context, word string, _, _ domain.Language) (*domain.WordAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.analyses[word]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, fmt.Errorf("no word here: %w", domain.ErrAnalysisRejected)
}

// chairAnalysis is the canonical ru→en fixture used across flow tests.
func chairAnalysis() *domain.WordAnalysis {
	return &domain.WordAnalysis{
		IsCorrect:      true,
		IsWord:         true,
		BaseLanguage:   domain.LanguageRussian,
		TargetLanguage: domain.LanguageEnglish,

		WordInBaseLanguage:   "стул",
		WordInTargetLanguage: "chair",

		OneWordDefinitionInBaseLanguage:   "сиденье",
		OneWordDefinitionInTargetLanguage: "seat",

		DescriptionInBaseLanguage:   "Предмет мебели для сидения.",
		DescriptionInTargetLanguage: "A piece of furniture for sitting.",

		ExamplesInBaseLanguage:   []string{"Он сел на стул.", "Стул стоит у окна."},
		ExamplesInTargetLanguage: []string{"He sat on the chair.", "The chair is by the window."},

		SynonymsInBaseLanguage:   []string{"табурет", "кресло", "сиденье"},
		SynonymsInTargetLanguage: []string{"seat", "stool", "armchair"},

		PhoneticInBaseLanguage:   "[stul]",
		PhoneticInTargetLanguage: "/tʃɛər/",

		PartOfSpeechInBaseLanguage:   domain.PartOfSpeechNoun,
		PartOfSpeechInTargetLanguage: domain.PartOfSpeechNoun,

		Difficulty: domain.DifficultyA1,
		Source:     domain.SourceAIGenerated,
	}
}

func chairAnalyses() map[string]*domain.WordAnalysis {
	return map[string]*domain.WordAnalysis{"chair": chairAnalysis()}
}

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// newTestServer wires real repositories and services over the shared test
// database, with the AI analyzer stubbed.
func newTestServer(t *testing.T, analyzer *stubAnalyzer) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authCfg := config.AuthConfig{
		JWTSecret:      "e2e-secret-key-of-sufficient-length!",
		JWTIssuer:      "polyglotta",
		AccessTokenTTL: time.Hour,
		BcryptCost:     4,
	}
	dictCfg := config.DictionaryConfig{
		MaxWordLength:     100,
		DefaultEaseFactor: 2.5,
		PageSizeDefault:   50,
		PageSizeMax:       200,
	}
	srsCfg := config.SRSConfig{
		DefaultEaseFactor:  2.5,
		MinEaseFactor:      1.3,
		MaxIntervalDays:    365,
		GraduatingInterval: 1,
		EasyInterval:       4,
		EasyBonus:          1.3,
		MasteredInterval:   21,
		ReviewsPerDay:      200,
		LearningSteps:      []time.Duration{time.Minute, 10 * time.Minute},
	}

	words := wordrepo.New(pool)
	entries := dictionaryrepo.New(pool)
	links := userdictrepo.New(pool)
	users := userrepo.New(pool)
	reviews := practicerepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwtManager := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	handlers := rest.Handlers{
		Health: rest.NewHealthHandler(pool, "e2e"),
		Auth:   rest.NewAuthHandler(authsvc.NewService(logger, users, jwtManager, authCfg), logger),
		Dictionary: rest.NewDictionaryHandler(
			ingestion.NewService(logger, analyzer, words, entries, links, users, users, tx, dictCfg),
			userdictsvc.NewService(logger, links, entries, dictCfg),
			logger),
		Practice: rest.NewPracticeHandler(
			practice.NewService(logger, links, reviews, users, tx, srsCfg), logger),
		Settings: rest.NewSettingsHandler(
			settingssvc.NewService(logger, users, config.SettingsConfig{
				SyncInterval:   time.Second,
				InitialBackoff: 10 * time.Millisecond,
				MaxBackoff:     100 * time.Millisecond,
				MaxRetries:     2,
			}), logger),
	}

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(jwtManager),
	)

	server := httptest.NewServer(rest.NewRouter(handlers, chain))
	t.Cleanup(server.Close)

	return &testServer{URL: server.URL, Client: server.Client(), Pool: pool}
}

// doJSON sends a JSON request with an optional bearer token and decodes the
// response body into a generic map (nil for empty bodies).
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp.StatusCode, out
}

// registerUser registers a fresh user and returns its access token.
func (ts *testServer) registerUser(t *testing.T) string {
	t.Helper()

	status, resp := ts.doJSON(t, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"email":          "e2e-" + uuid.NewString()[:8] + "@example.com",
		"password":       "correct-horse-battery",
		"baseLanguage":   "ru",
		"targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", resp)

	token, ok := resp["accessToken"].(string)
	require.True(t, ok, "expected accessToken in %v", resp)
	return token
}
