package memory

import (
	"context"
	"fmt"
	"sync"

	"brainy-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// UserStore is an in-memory implementation of app.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

func (s *UserStore) GetUser(_ context.Context, userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	attempts := make([]domain.Attempt, len(user.QuizzesTaken))
	copy(attempts, user.QuizzesTaken)
	return domain.User{ID: user.ID, QuizzesTaken: attempts}, nil
}

func (s *UserStore) AppendAttempt(_ context.Context, userID string, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.QuizzesTaken = append(user.QuizzesTaken, attempt)
	return nil
}

func (s *UserStore) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	attempts := make([]domain.Attempt, len(user.QuizzesTaken))
	copy(attempts, user.QuizzesTaken)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return domain.User{}, fmt.Errorf("user %s already exists", user.ID)
	}
	s.users[user.ID] = &domain.User{ID: user.ID, QuizzesTaken: attempts}
	return domain.User{ID: user.ID, QuizzesTaken: attempts}, nil
}
