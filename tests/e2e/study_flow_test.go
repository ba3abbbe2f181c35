//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeFlow(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	token := ts.registerUser(t)

	status, _ := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", token, map[string]any{
		"word": "chair", "baseLanguage": "ru", "targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status)

	// A freshly linked card is immediately due.
	status, queue := ts.doJSON(t, http.MethodGet, "/v1/practice/queue", token, nil)
	require.Equal(t, http.StatusOK, status)
	items := queue["items"].([]any)
	require.Len(t, items, 1)
	card := items[0].(map[string]any)
	assert.Equal(t, "NEW", card["status"])
	linkID := card["id"].(string)

	// GOOD on a new card moves it into learning.
	status, review := ts.doJSON(t, http.MethodPost, "/v1/practice/cards/"+linkID+"/review", token, map[string]any{
		"grade": "GOOD",
	})
	require.Equal(t, http.StatusOK, status, "%v", review)
	assert.Equal(t, "NEW", review["prevStatus"])
	link := review["link"].(map[string]any)
	assert.Equal(t, "LEARNING", link["status"])
	assert.NotEmpty(t, review["nextReviewAt"])

	// Unknown grades are rejected before touching the card.
	status, _ = ts.doJSON(t, http.MethodPost, "/v1/practice/cards/"+linkID+"/review", token, map[string]any{
		"grade": "PERFECT",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPracticeQueueIsolatedPerUser(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	owner := ts.registerUser(t)
	stranger := ts.registerUser(t)

	status, _ := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", owner, map[string]any{
		"word": "chair", "baseLanguage": "ru", "targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status)

	status, queue := ts.doJSON(t, http.MethodGet, "/v1/practice/queue", stranger, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, queue["items"])
}

func TestSettingsFlow(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	token := ts.registerUser(t)

	status, settings := ts.doJSON(t, http.MethodGet, "/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ru", settings["baseLanguage"])
	assert.Equal(t, "en", settings["targetLanguage"])

	status, updated := ts.doJSON(t, http.MethodPut, "/v1/settings", token, map[string]any{
		"baseLanguage":   "ru",
		"targetLanguage": "de",
		"dailyGoal":      42,
		"theme":          "dark",
	})
	require.Equal(t, http.StatusOK, status, "%v", updated)
	assert.Equal(t, "de", updated["targetLanguage"])
	assert.EqualValues(t, 42, updated["dailyGoal"])

	status, settings = ts.doJSON(t, http.MethodGet, "/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dark", settings["theme"])

	// Same base and target language is rejected.
	status, _ = ts.doJSON(t, http.MethodPut, "/v1/settings", token, map[string]any{
		"baseLanguage":   "en",
		"targetLanguage": "en",
		"dailyGoal":      10,
		"theme":          "light",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})

	email := "login-flow@example.com"
	status, resp := ts.doJSON(t, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"email":          email,
		"password":       "correct-horse-battery",
		"baseLanguage":   "ru",
		"targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status, "%v", resp)

	status, login := ts.doJSON(t, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login["accessToken"])

	status, _ = ts.doJSON(t, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
