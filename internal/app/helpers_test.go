package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"brainy-quiz-service/internal/domain"
	"brainy-quiz-service/internal/infra/memory"
)

var errStoreDown = errors.New("store unavailable")

func lettersQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       "quiz-1",
		Title:    "Letters",
		Category: "alphabet",
		Questions: []domain.Question{
			{QuestionText: "First?", Options: []string{"A", "B", "C"}, CorrectAnswer: "A"},
			{QuestionText: "Second?", Options: []string{"A", "B", "C"}, CorrectAnswer: "B"},
		},
	}
}

func capitalsQuiz() domain.Quiz {
	return domain.Quiz{
		ID:       "quiz-2",
		Title:    "Capitals",
		Category: "geography",
		Questions: []domain.Question{
			{QuestionText: "Capital of Italy?", Options: []string{"Rome", "Milan"}, CorrectAnswer: "Rome"},
		},
	}
}

type fixture struct {
	quizzes *memory.QuizStore
	users   *memory.UserStore
	feed    *memory.AttemptFeed
	clock   *fakeClock
}

func newFixture() *fixture {
	users := memory.NewUserStore()
	_, _ = users.CreateUser(context.Background(), domain.User{ID: "u1"})
	return &fixture{
		quizzes: memory.NewQuizStoreWith(lettersQuiz(), capitalsQuiz()),
		users:   users,
		feed:    memory.NewAttemptFeed(),
		clock:   &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
}

type fakeClock struct {
	now time.Time
}

// Now advances one minute per call so attempts get distinct dates.
func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

// brokenQuizzes fails every call.
type brokenQuizzes struct{}

func (brokenQuizzes) GetQuiz(context.Context, string) (domain.Quiz, error) {
	return domain.Quiz{}, errStoreDown
}

func (brokenQuizzes) ListQuizzes(context.Context) ([]domain.QuizSummary, error) {
	return nil, errStoreDown
}

func (brokenQuizzes) QuizSummaries(context.Context, []string) (map[string]domain.QuizSummary, error) {
	return nil, errStoreDown
}

func (brokenQuizzes) CreateQuiz(context.Context, domain.Quiz) (domain.Quiz, error) {
	return domain.Quiz{}, errStoreDown
}

// gatedQuizzes holds ListQuizzes until release is closed and counts how often the store is scanned.
type gatedQuizzes struct {
	*memory.QuizStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	scans   atomic.Int32
}

func newGatedQuizzes(quizzes ...domain.Quiz) *gatedQuizzes {
	return &gatedQuizzes{
		QuizStore: memory.NewQuizStoreWith(quizzes...),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (g *gatedQuizzes) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	g.scans.Add(1)
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.QuizStore.ListQuizzes(ctx)
}
