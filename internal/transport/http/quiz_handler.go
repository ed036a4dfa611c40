package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"brainy-quiz-service/internal/auth"
)

// submitRequest decodes answers as pointers so null elements can be told apart from "".
type submitRequest struct {
	UserAnswers []*string `json:"userAnswers" validate:"required,dive,required"`
}

func (req submitRequest) answers() []string {
	answers := make([]string, len(req.UserAnswers))
	for i, answer := range req.UserAnswers {
		answers[i] = *answer
	}
	return answers
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.quizzes.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) listCategoryQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListCategoryQuizzes(r.Context(), r.PathValue("category"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuizForTaking(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserID(r.Context())

	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "userAnswers must be an array of strings")
		return
	}

	result, err := h.scoring.Submit(r.Context(), r.PathValue("id"), callerID, req.answers())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
