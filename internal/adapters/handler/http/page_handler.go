package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

const missingChoiceMessage = "You didn't choose a choice!"

// PageHandler serves the public, server-rendered poll pages.
type PageHandler struct {
	queryService  ports.PollQueryService
	votingService ports.VotingService
	templates     *pageTemplates
}

func NewPageHandler(queryService ports.PollQueryService, votingService ports.VotingService) *PageHandler {
	return &PageHandler{
		queryService:  queryService,
		votingService: votingService,
		templates:     pages,
	}
}

type indexPageData struct {
	Questions []*domain.Question
}

type detailPageData struct {
	Question         *domain.Question
	SelectedChoiceID string
	ErrorMessage     string
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := h.queryService.ListPublished(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "failed to load polls", http.StatusInternalServerError)
		return
	}

	h.templates.render(w, h.templates.index, http.StatusOK, indexPageData{Questions: questions})
}

func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "id")

	detail, err := h.queryService.GetDetail(r.Context(), questionID, userIDFromContext(r), time.Now())
	if err != nil {
		h.renderQueryError(w, err)
		return
	}

	if !detail.CanVote {
		http.Redirect(w, r, "/polls/"+questionID+"/results/", http.StatusSeeOther)
		return
	}

	data := detailPageData{Question: detail.Question}
	if detail.SelectedChoice != nil {
		data.SelectedChoiceID = detail.SelectedChoice.ID.String()
	}
	h.templates.render(w, h.templates.detail, http.StatusOK, data)
}

func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "id")

	results, err := h.queryService.GetResults(r.Context(), questionID, time.Now())
	if err != nil {
		h.renderQueryError(w, err)
		return
	}

	h.templates.render(w, h.templates.results, http.StatusOK, results)
}

func (h *PageHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "id")

	userID := userIDFromContext(r)
	if userID == nil {
		// RequireUser already fences this route; kept as a guard for
		// direct wiring in tests.
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	qID, err := uuid.Parse(questionID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	// A missing or malformed choice keeps the user on the form with an
	// inline message rather than an error status.
	choiceID, parseErr := uuid.Parse(r.PostFormValue("choice"))
	if parseErr != nil {
		h.redisplayForm(w, r, questionID, *userID)
		return
	}

	now := time.Now()
	err = h.votingService.CastVote(r.Context(), ports.CastVoteInput{
		QuestionID: qID,
		ChoiceID:   choiceID,
		UserID:     *userID,
		Now:        now,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/polls/"+questionID+"/results/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrInvalidChoice):
		h.redisplayForm(w, r, questionID, *userID)
	case errors.Is(err, domain.ErrVotingClosed):
		http.Redirect(w, r, "/polls/"+questionID+"/results/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrInvalidQuestionID):
		http.NotFound(w, r)
	default:
		http.Error(w, "failed to cast vote", http.StatusInternalServerError)
	}
}

func (h *PageHandler) redisplayForm(w http.ResponseWriter, r *http.Request, questionID string, userID uuid.UUID) {
	detail, err := h.queryService.GetDetail(r.Context(), questionID, &userID, time.Now())
	if err != nil {
		h.renderQueryError(w, err)
		return
	}

	data := detailPageData{
		Question:     detail.Question,
		ErrorMessage: missingChoiceMessage,
	}
	if detail.SelectedChoice != nil {
		data.SelectedChoiceID = detail.SelectedChoice.ID.String()
	}
	h.templates.render(w, h.templates.detail, http.StatusOK, data)
}

func (h *PageHandler) renderQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrQuestionNotFound) || errors.Is(err, domain.ErrInvalidQuestionID) {
		http.Error(w, "poll not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func userIDFromContext(r *http.Request) *uuid.UUID {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}
