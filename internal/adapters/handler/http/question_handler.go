package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

// QuestionHandler is the authoring API: questions are created and managed
// here, never through the public pages.
type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

type createQuestionRequest struct {
	Text      string     `json:"text"`
	PublishAt time.Time  `json:"publish_at"`
	CloseAt   *time.Time `json:"close_at,omitempty"`
	Visible   *bool      `json:"visible,omitempty"`
	Choices   []string   `json:"choices"`
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		Text:      req.Text,
		PublishAt: req.PublishAt,
		CloseAt:   req.CloseAt,
		Visible:   true,
		Choices:   req.Choices,
	}
	if req.PublishAt.IsZero() {
		input.PublishAt = time.Now()
	}
	if req.Visible != nil {
		input.Visible = *req.Visible
	}

	question, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to create question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(question); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	question, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuestionID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(question); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type setVisibilityRequest struct {
	Visible bool `json:"visible"`
}

func (h *QuestionHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetVisible(r.Context(), id, req.Visible); err != nil {
		if errors.Is(err, domain.ErrInvalidQuestionID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateDatesRequest struct {
	PublishAt time.Time  `json:"publish_at"`
	CloseAt   *time.Time `json:"close_at,omitempty"`
}

func (h *QuestionHandler) UpdateDates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateDates(r.Context(), id, req.PublishAt, req.CloseAt); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuestionID), errors.Is(err, domain.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrQuestionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "failed to update dates", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
