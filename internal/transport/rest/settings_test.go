package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/internal/service/settings"
)

type mockSettingsService struct {
	getFn    func(ctx context.Context) (*domain.UserSettings, error)
	updateFn func(ctx context.Context, input settings.UpdateInput) (*domain.UserSettings, error)
}

func (m *mockSettingsService) Get(ctx context.Context) (*domain.UserSettings, error) {
	return m.getFn(ctx)
}

func (m *mockSettingsService) Update(ctx context.Context, input settings.UpdateInput) (*domain.UserSettings, error) {
	return m.updateFn(ctx, input)
}

func TestSettingsGet(t *testing.T) {
	svc := &mockSettingsService{
		getFn: func(context.Context) (*domain.UserSettings, error) {
			return &domain.UserSettings{
				UserID:         uuid.New(),
				BaseLanguage:   domain.LanguageRussian,
				TargetLanguage: domain.LanguageEnglish,
				DailyGoal:      20,
				Theme:          "system",
				UpdatedAt:      time.Now(),
			}, nil
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp settingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ru", resp.BaseLanguage)
	assert.Equal(t, "en", resp.TargetLanguage)
	assert.Equal(t, 20, resp.DailyGoal)
}

func TestSettingsGetAnonymous(t *testing.T) {
	svc := &mockSettingsService{
		getFn: func(context.Context) (*domain.UserSettings, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSettingsUpdate(t *testing.T) {
	svc := &mockSettingsService{
		updateFn: func(_ context.Context, input settings.UpdateInput) (*domain.UserSettings, error) {
			assert.Equal(t, domain.LanguageRussian, input.BaseLanguage)
			assert.Equal(t, domain.LanguageGerman, input.TargetLanguage)
			assert.Equal(t, 30, input.DailyGoal)
			assert.Equal(t, "dark", input.Theme)
			return &domain.UserSettings{
				BaseLanguage:   input.BaseLanguage,
				TargetLanguage: input.TargetLanguage,
				DailyGoal:      input.DailyGoal,
				Theme:          input.Theme,
				UpdatedAt:      time.Now(),
			}, nil
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	body := `{"baseLanguage":"ru","targetLanguage":"de","dailyGoal":30,"theme":"dark"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"targetLanguage":"de"`)
}

func TestSettingsUpdateBadBody(t *testing.T) {
	h := NewSettingsHandler(&mockSettingsService{}, testLogger())

	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader("{oops"))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsUpdateValidation(t *testing.T) {
	svc := &mockSettingsService{
		updateFn: func(context.Context, settings.UpdateInput) (*domain.UserSettings, error) {
			return nil, domain.NewValidationErrors([]domain.FieldError{
				{Field: "dailyGoal", Message: "must be between 1 and 500"},
			})
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{"dailyGoal":0}`))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
