package rest

import (
	"context"
	"log/slog"
	"net/http"

	providerspeech "github.com/polyglotta/polyglotta-backend/internal/adapter/provider/speech"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// speechService defines the pronunciation operation needed by SpeechHandler.
type speechService interface {
	Pronounce(ctx context.Context, text string, lang domain.Language, voice string) (*providerspeech.Clip, error)
}

// SpeechHandler serves pronunciation audio.
type SpeechHandler struct {
	speech speechService
	log    *slog.Logger
}

// NewSpeechHandler creates a SpeechHandler.
func NewSpeechHandler(svc speechService, logger *slog.Logger) *SpeechHandler {
	return &SpeechHandler{
		speech: svc,
		log:    logger.With("handler", "speech"),
	}
}

// Pronounce handles GET /v1/speech. The audio bytes are returned raw with the
// provider's content type so clients can play them directly.
func (h *SpeechHandler) Pronounce(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	lang := domain.Language(q.Get("language"))
	voice := q.Get("voice")

	clip, err := h.speech.Pronounce(r.Context(), text, lang, voice)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	contentType := clip.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(clip.Audio); err != nil {
		h.log.WarnContext(r.Context(), "write audio response", "error", err)
	}
}
