package http

import (
	"net/http"

	"brainy-quiz-service/internal/app"
	"brainy-quiz-service/internal/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler exposes the quiz use cases over HTTP under /api/quizzes.
type Handler struct {
	quizzes  *app.QuizService
	scoring  *app.ScoringService
	history  *app.HistoryService
	feed     app.AttemptFeed
	auth     *auth.Authenticator
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewHandler(quizzes *app.QuizService, scoring *app.ScoringService, history *app.HistoryService, feed app.AttemptFeed, authenticator *auth.Authenticator) *Handler {
	return &Handler{
		quizzes:  quizzes,
		scoring:  scoring,
		history:  history,
		feed:     feed,
		auth:     authenticator,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the full HTTP handler, middleware included.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/quizzes", h.listCategories)
	// Kept as an alias of /api/quizzes for existing clients.
	mux.HandleFunc("GET /api/quizzes/categories", h.listCategories)
	mux.HandleFunc("GET /api/quizzes/categories/{category}", h.listCategoryQuizzes)
	mux.HandleFunc("GET /api/quizzes/{id}", h.getQuiz)

	mux.Handle("POST /api/quizzes/submit/{id}", h.requireUser(h.submitQuiz))
	mux.Handle("GET /api/quizzes/user/quizzes", h.requireUser(h.userQuizzes))
	mux.Handle("GET /api/quizzes/user/history", h.requireUser(h.userHistory))
	mux.Handle("GET /api/quizzes/user/feed", h.requireUser(h.serveFeed))

	return logRequests(recoverPanics(mux))
}
