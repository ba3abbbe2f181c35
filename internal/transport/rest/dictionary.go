package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/internal/service/ingestion"
	"github.com/polyglotta/polyglotta-backend/internal/service/userdict"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

// ingestionService defines the ingestion operations needed by DictionaryHandler.
type ingestionService interface {
	IngestWord(ctx context.Context, input ingestion.IngestInput) (*ingestion.Result, error)
	Link(ctx context.Context, userID, entryID uuid.UUID) (*domain.UserDictionaryLink, error)
}

// userdictService defines the dictionary-view operations needed by DictionaryHandler.
type userdictService interface {
	List(ctx context.Context, input userdict.ListInput) (*userdict.ListResult, error)
	Get(ctx context.Context, linkID uuid.UUID) (*userdict.Card, error)
	Unlink(ctx context.Context, entryID uuid.UUID) error
}

// DictionaryHandler serves dictionary REST endpoints.
type DictionaryHandler struct {
	ingest   ingestionService
	userdict userdictService
	log      *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(ingest ingestionService, ud userdictService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		ingest:   ingest,
		userdict: ud,
		log:      logger.With("handler", "dictionary"),
	}
}

type ingestRequest struct {
	Word           string `json:"word"`
	BaseLanguage   string `json:"baseLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type ingestResponse struct {
	TargetEntryID string `json:"targetEntryId"`
	BaseEntryID   string `json:"baseEntryId"`
	LinkID        string `json:"linkId"`
}

// Ingest handles POST /v1/dictionary/ingest.
func (h *DictionaryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ingest.IngestWord(r.Context(), ingestion.IngestInput{
		Word:           req.Word,
		BaseLanguage:   domain.Language(req.BaseLanguage),
		TargetLanguage: domain.Language(req.TargetLanguage),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{
		TargetEntryID: result.TargetEntryID.String(),
		BaseEntryID:   result.BaseEntryID.String(),
		LinkID:        result.LinkID.String(),
	})
}

type cardResponse struct {
	Link  linkResponse  `json:"link"`
	Entry entryResponse `json:"entry"`
}

type linkResponse struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	IntervalDays int        `json:"intervalDays"`
	EaseFactor   float64    `json:"easeFactor"`
	NextReviewAt *time.Time `json:"nextReviewAt,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type entryResponse struct {
	ID                string            `json:"id"`
	Word              *wordResponse     `json:"word,omitempty"`
	Definition        string            `json:"definition,omitempty"`
	DescriptionBase   string            `json:"descriptionBase"`
	DescriptionTarget string            `json:"descriptionTarget"`
	PartOfSpeech      string            `json:"partOfSpeech"`
	Difficulty        string            `json:"difficulty"`
	Source            string            `json:"source"`
	Examples          []string          `json:"examples"`
	Synonyms          []synonymResponse `json:"synonyms"`
}

type wordResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Phonetic string `json:"phonetic,omitempty"`
}

type synonymResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type listResponse struct {
	Items []cardResponse `json:"items"`
	Total int            `json:"total"`
}

// List handles GET /v1/dictionary.
func (h *DictionaryHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.userdict.List(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]cardResponse, 0, len(result.Cards))
	for _, c := range result.Cards {
		items = append(items, toCardResponse(c))
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: result.Total})
}

// Get handles GET /v1/dictionary/{id}.
func (h *DictionaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	linkID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	card, err := h.userdict.Get(r.Context(), linkID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(*card))
}

// Unlink handles DELETE /v1/dictionary/entries/{id}.
func (h *DictionaryHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.userdict.Unlink(r.Context(), entryID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Link handles POST /v1/dictionary/entries/{id}/link.
func (h *DictionaryHandler) Link(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	link, err := h.ingest.Link(r.Context(), userID, entryID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLinkResponse(*link))
}

func parseListInput(r *http.Request) (userdict.ListInput, error) {
	q := r.URL.Query()
	var input userdict.ListInput

	if v := q.Get("language"); v != "" {
		lang := domain.Language(v)
		input.Language = &lang
	}
	if v := q.Get("difficulty"); v != "" {
		d := domain.DifficultyLevel(v)
		input.Difficulty = &d
	}
	if v := q.Get("status"); v != "" {
		s := domain.LearningStatus(v)
		input.Status = &s
	}
	if v := q.Get("search"); v != "" {
		input.Search = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, fmt.Errorf("limit must be an integer")
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, fmt.Errorf("offset must be an integer")
		}
		input.Offset = n
	}

	return input, nil
}

func toCardResponse(c userdict.Card) cardResponse {
	return cardResponse{
		Link:  toLinkResponse(c.Link),
		Entry: toEntryResponse(c.Entry),
	}
}

func toLinkResponse(l domain.UserDictionaryLink) linkResponse {
	return linkResponse{
		ID:           l.ID.String(),
		Status:       l.Status.String(),
		IntervalDays: l.IntervalDays,
		EaseFactor:   l.EaseFactor,
		NextReviewAt: l.NextReviewAt,
		ReviewedAt:   l.ReviewedAt,
		CreatedAt:    l.CreatedAt,
	}
}

func toEntryResponse(e domain.DictionaryEntry) entryResponse {
	resp := entryResponse{
		ID:                e.ID.String(),
		DescriptionBase:   e.DescriptionBase,
		DescriptionTarget: e.DescriptionTarget,
		PartOfSpeech:      e.PartOfSpeech.String(),
		Difficulty:        e.Difficulty.String(),
		Source:            e.Source.String(),
		Examples:          make([]string, 0, len(e.Examples)),
		Synonyms:          make([]synonymResponse, 0, len(e.Synonyms)),
	}

	if e.Word != nil {
		resp.Word = &wordResponse{
			Text:     e.Word.Text,
			Language: e.Word.Language.String(),
			Phonetic: e.Word.Phonetic,
		}
	}
	if e.Definition != nil {
		resp.Definition = e.Definition.Text
	}
	for _, ex := range e.Examples {
		resp.Examples = append(resp.Examples, ex.Sentence)
	}
	for _, syn := range e.Synonyms {
		resp.Synonyms = append(resp.Synonyms, synonymResponse{
			Text:     syn.Text,
			Language: syn.Language.String(),
		})
	}

	return resp
}
