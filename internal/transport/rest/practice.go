package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/internal/service/practice"
)

// practiceService defines the practice operations needed by PracticeHandler.
type practiceService interface {
	DueQueue(ctx context.Context, limit int) ([]domain.UserDictionaryLink, error)
	ReviewCard(ctx context.Context, linkID uuid.UUID, grade domain.ReviewGrade) (*practice.ReviewResult, error)
}

// PracticeHandler serves spaced-repetition REST endpoints.
type PracticeHandler struct {
	practice practiceService
	log      *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{
		practice: svc,
		log:      logger.With("handler", "practice"),
	}
}

type queueResponse struct {
	Items []linkResponse `json:"items"`
}

// Queue handles GET /v1/practice/queue.
func (h *PracticeHandler) Queue(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	links, err := h.practice.DueQueue(r.Context(), limit)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]linkResponse, 0, len(links))
	for _, l := range links {
		items = append(items, toLinkResponse(l))
	}
	writeJSON(w, http.StatusOK, queueResponse{Items: items})
}

type reviewRequest struct {
	Grade string `json:"grade"`
}

type reviewResponse struct {
	Link         linkResponse `json:"link"`
	PrevStatus   string       `json:"prevStatus"`
	NextReviewAt time.Time    `json:"nextReviewAt"`
}

// Review handles POST /v1/practice/cards/{id}/review.
func (h *PracticeHandler) Review(w http.ResponseWriter, r *http.Request) {
	linkID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.practice.ReviewCard(r.Context(), linkID, domain.ReviewGrade(req.Grade))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{
		Link:         toLinkResponse(*result.Link),
		PrevStatus:   result.PrevStatus.String(),
		NextReviewAt: result.NextReviewAt,
	})
}
