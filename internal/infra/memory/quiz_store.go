package memory

import (
	"context"
	"fmt"
	"sync"

	"brainy-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// QuizStore is an in-memory implementation of app.QuizRepository (useful for tests/demos).
// Quizzes are listed in insertion order.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
	order   []string
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[string]domain.Quiz)}
}

// NewQuizStoreWith seeds the store with quizzes, keeping their ids.
func NewQuizStoreWith(quizzes ...domain.Quiz) *QuizStore {
	s := NewQuizStore()
	for _, quiz := range quizzes {
		_, _ = s.CreateQuiz(context.Background(), quiz)
	}
	return s
}

func (s *QuizStore) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.QuizSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]domain.QuizSummary, 0, len(s.order))
	for _, id := range s.order {
		summaries = append(summaries, s.quizzes[id].Summary())
	}
	return summaries, nil
}

func (s *QuizStore) QuizSummaries(_ context.Context, quizIDs []string) (map[string]domain.QuizSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make(map[string]domain.QuizSummary, len(quizIDs))
	for _, id := range quizIDs {
		if quiz, ok := s.quizzes[id]; ok {
			summaries[id] = quiz.Summary()
		}
	}
	return summaries, nil
}

func (s *QuizStore) CreateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz = cloneQuiz(quiz)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quiz.ID]; ok {
		return domain.Quiz{}, fmt.Errorf("quiz %s already exists", quiz.ID)
	}
	s.quizzes[quiz.ID] = quiz
	s.order = append(s.order, quiz.ID)
	return cloneQuiz(quiz), nil
}

// DeleteQuiz removes a quiz. Attempts referencing it are left untouched.
func (s *QuizStore) DeleteQuiz(_ context.Context, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	for i, id := range s.order {
		if id == quizID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneQuiz(quiz domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		q.Options = options
		questions[i] = q
	}
	quiz.Questions = questions
	return quiz
}
