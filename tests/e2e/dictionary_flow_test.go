//go:build e2e

package e2e_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestAndListFlow(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	token := ts.registerUser(t)

	// Ingest "chair": two mirrored entries, one link for the learner.
	status, resp := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", token, map[string]any{
		"word":           "chair",
		"baseLanguage":   "ru",
		"targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status, "%v", resp)
	require.NotEmpty(t, resp["targetEntryId"])
	require.NotEmpty(t, resp["baseEntryId"])
	require.NotEmpty(t, resp["linkId"])
	assert.NotEqual(t, resp["targetEntryId"], resp["baseEntryId"])

	// The learner's dictionary shows the target-language card with its tree.
	status, list := ts.doJSON(t, http.MethodGet, "/v1/dictionary", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, list["total"])

	items := list["items"].([]any)
	require.Len(t, items, 1)
	card := items[0].(map[string]any)
	entry := card["entry"].(map[string]any)
	word := entry["word"].(map[string]any)
	assert.Equal(t, "chair", word["text"])
	assert.Equal(t, "en", word["language"])
	assert.Equal(t, "seat", entry["definition"])
	assert.Len(t, entry["examples"].([]any), 2)
	assert.Len(t, entry["synonyms"].([]any), 3)
}

func TestIngestReusesWords(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	userA := ts.registerUser(t)
	userB := ts.registerUser(t)

	for _, token := range []string{userA, userB} {
		status, resp := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", token, map[string]any{
			"word": "chair", "baseLanguage": "ru", "targetLanguage": "en",
		})
		require.Equal(t, http.StatusCreated, status, "%v", resp)
	}

	// Both ingestions resolve to the same shared word rows.
	var count int
	err := ts.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM words WHERE text_normalized = 'chair' AND language = 'en'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestRejectedWord(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	token := ts.registerUser(t)

	status, _ := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", token, map[string]any{
		"word": "xyzzy", "baseLanguage": "ru", "targetLanguage": "en",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestIngestRequiresAuth(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})

	status, _ := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", "", map[string]any{
		"word": "chair", "baseLanguage": "ru", "targetLanguage": "en",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUnlinkFlow(t *testing.T) {
	ts := newTestServer(t, &stubAnalyzer{analyses: chairAnalyses()})
	token := ts.registerUser(t)

	status, resp := ts.doJSON(t, http.MethodPost, "/v1/dictionary/ingest", token, map[string]any{
		"word": "chair", "baseLanguage": "ru", "targetLanguage": "en",
	})
	require.Equal(t, http.StatusCreated, status)
	entryID := resp["targetEntryId"].(string)

	status, _ = ts.doJSON(t, http.MethodDelete, "/v1/dictionary/entries/"+entryID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	// A second unlink has nothing left to remove.
	status, _ = ts.doJSON(t, http.MethodDelete, "/v1/dictionary/entries/"+entryID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, list := ts.doJSON(t, http.MethodGet, "/v1/dictionary", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, list["total"])
}
