package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/internal/service/settings"
)

// settingsService defines the settings operations needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Update(ctx context.Context, input settings.UpdateInput) (*domain.UserSettings, error)
}

// SettingsHandler serves user settings REST endpoints.
type SettingsHandler struct {
	settings settingsService
	log      *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: svc,
		log:      logger.With("handler", "settings"),
	}
}

type settingsResponse struct {
	BaseLanguage   string    `json:"baseLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	DailyGoal      int       `json:"dailyGoal"`
	Voice          string    `json:"voice,omitempty"`
	Theme          string    `json:"theme"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

type updateSettingsRequest struct {
	BaseLanguage   string `json:"baseLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	DailyGoal      int    `json:"dailyGoal"`
	Voice          string `json:"voice"`
	Theme          string `json:"theme"`
}

// Update handles PUT /v1/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.settings.Update(r.Context(), settings.UpdateInput{
		BaseLanguage:   domain.Language(req.BaseLanguage),
		TargetLanguage: domain.Language(req.TargetLanguage),
		DailyGoal:      req.DailyGoal,
		Voice:          req.Voice,
		Theme:          req.Theme,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		BaseLanguage:   s.BaseLanguage.String(),
		TargetLanguage: s.TargetLanguage.String(),
		DailyGoal:      s.DailyGoal,
		Voice:          s.Voice,
		Theme:          s.Theme,
		UpdatedAt:      s.UpdatedAt,
	}
}
