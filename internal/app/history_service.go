package app

import (
	"context"

	"brainy-quiz-service/internal/domain"
)

// HistoryService projects a user's attempts joined with quiz metadata.
type HistoryService struct {
	quizzes QuizRepository
	users   UserRepository
}

func NewHistoryService(quizzes QuizRepository, users UserRepository) *HistoryService {
	return &HistoryService{quizzes: quizzes, users: users}
}

// ListUserQuizzes returns one summary per attempt in the order they were recorded.
func (s *HistoryService) ListUserQuizzes(ctx context.Context, callerID string) ([]domain.TakenQuiz, error) {
	user, summaries, err := s.load(ctx, callerID)
	if err != nil {
		return nil, err
	}

	taken := make([]domain.TakenQuiz, 0, len(user.QuizzesTaken))
	for _, attempt := range user.QuizzesTaken {
		entry := domain.TakenQuiz{QuizID: attempt.QuizID}
		if summary, ok := summaries[attempt.QuizID]; ok {
			entry.Title = summary.Title
			entry.Category = summary.Category
		} else {
			entry.QuizDeleted = true
		}
		taken = append(taken, entry)
	}
	return taken, nil
}

// GetUserHistory returns one detailed entry per attempt in the order they were recorded.
func (s *HistoryService) GetUserHistory(ctx context.Context, callerID string) ([]domain.HistoryEntry, error) {
	user, summaries, err := s.load(ctx, callerID)
	if err != nil {
		return nil, err
	}

	history := make([]domain.HistoryEntry, 0, len(user.QuizzesTaken))
	for _, attempt := range user.QuizzesTaken {
		entry := domain.HistoryEntry{
			QuizID: attempt.QuizID,
			Score:  attempt.Score,
			Date:   attempt.Date,
		}
		if summary, ok := summaries[attempt.QuizID]; ok {
			entry.QuizTitle = summary.Title
		} else {
			entry.QuizDeleted = true
		}
		history = append(history, entry)
	}
	return history, nil
}

// load fetches the user and resolves every referenced quiz in one lookup.
// Quizzes deleted since the attempt are simply missing from the returned map.
func (s *HistoryService) load(ctx context.Context, callerID string) (domain.User, map[string]domain.QuizSummary, error) {
	user, err := s.users.GetUser(ctx, callerID)
	if err != nil {
		return domain.User{}, nil, err
	}
	if len(user.QuizzesTaken) == 0 {
		return user, map[string]domain.QuizSummary{}, nil
	}

	seen := make(map[string]struct{}, len(user.QuizzesTaken))
	ids := make([]string, 0, len(user.QuizzesTaken))
	for _, attempt := range user.QuizzesTaken {
		if _, ok := seen[attempt.QuizID]; ok {
			continue
		}
		seen[attempt.QuizID] = struct{}{}
		ids = append(ids, attempt.QuizID)
	}

	summaries, err := s.quizzes.QuizSummaries(ctx, ids)
	if err != nil {
		return domain.User{}, nil, err
	}
	return user, summaries, nil
}
