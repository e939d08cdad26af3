package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/generate-quiz", h.GenerateQuiz)
	r.Post("/check-answers", h.CheckAnswers)
	r.Post("/get-hint", h.GetHint)
	r.Post("/generate-description", h.GenerateDescription)
	r.Post("/generate-study-plan", h.GenerateStudyPlan)
	r.Post("/answer-question", h.AnswerQuestion)
	return r
}
