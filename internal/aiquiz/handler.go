package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/codecourse-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.GenerateQuiz(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate quiz")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) CheckAnswers(w http.ResponseWriter, r *http.Request) {
	var req CheckAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CheckAnswers(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to check answers")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetHint(w http.ResponseWriter, r *http.Request) {
	var req HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.GetHint(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate hint")
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req DescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.GenerateDescription(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate course description")
		return
	}
	config.JSON(w, http.StatusOK, envelope{Success: true, Data: resp})
}

func (h *Handler) GenerateStudyPlan(w http.ResponseWriter, r *http.Request) {
	var req StudyPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.GenerateStudyPlan(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate study plan")
		return
	}
	config.JSON(w, http.StatusOK, envelope{Success: true, Data: resp})
}

func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req AnswerQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.AnswerQuestion(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to answer question")
		return
	}
	config.JSON(w, http.StatusOK, envelope{Success: true, Data: resp})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		config.Error(w, http.StatusBadRequest, reqErr.Msg)
	case errors.Is(err, ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, "Quiz not found or expired")
	default:
		config.WithContext(r.Context()).WithError(err).Error(fallback)
		config.Error(w, http.StatusInternalServerError, fallback)
	}
}
