package http

import (
	"net/http"

	"brainy-quiz-service/internal/auth"
)

func (h *Handler) userQuizzes(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserID(r.Context())
	taken, err := h.history.ListUserQuizzes(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taken)
}

func (h *Handler) userHistory(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserID(r.Context())
	history, err := h.history.GetUserHistory(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
