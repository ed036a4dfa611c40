package app

import (
	"context"
	"sort"

	"brainy-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuizRepository abstracts where quizzes live (in-memory, Postgres, Mongo).
type QuizRepository interface {
	// GetQuiz returns the full quiz or domain.ErrQuizNotFound.
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	// ListQuizzes returns every quiz without its questions.
	ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error)
	// QuizSummaries resolves ids to summaries. Unknown ids are absent from the result.
	QuizSummaries(ctx context.Context, quizIDs []string) (map[string]domain.QuizSummary, error)
	// CreateQuiz stores a quiz, assigning an id when it is empty.
	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
}

// QuizService serves read-only projections of the quiz store.
type QuizService struct {
	quizzes QuizRepository
	sf      singleflight.Group
}

func NewQuizService(quizzes QuizRepository) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// ListCategories returns the distinct categories, sorted.
// Concurrent callers share a single scan of the store. The scan is detached
// from any one caller's cancellation; each caller stops waiting on its own ctx.
func (s *QuizService) ListCategories(ctx context.Context) ([]string, error) {
	scanCtx := context.WithoutCancel(ctx)
	results := s.sf.DoChan("categories", func() (interface{}, error) {
		summaries, err := s.quizzes.ListQuizzes(scanCtx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(summaries))
		categories := make([]string, 0, len(summaries))
		for _, summary := range summaries {
			if _, ok := seen[summary.Category]; ok {
				continue
			}
			seen[summary.Category] = struct{}{}
			categories = append(categories, summary.Category)
		}
		sort.Strings(categories)
		return categories, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	// Shared result; hand each caller its own slice.
	shared := res.Val.([]string)
	categories := make([]string, len(shared))
	copy(categories, shared)
	return categories, nil
}

// ListCategoryQuizzes returns the quizzes whose category matches exactly.
func (s *QuizService) ListCategoryQuizzes(ctx context.Context, category string) ([]domain.QuizSummary, error) {
	summaries, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.QuizSummary, 0)
	for _, summary := range summaries {
		if summary.Category == category {
			matched = append(matched, summary)
		}
	}
	return matched, nil
}

// GetQuizForTaking returns the quiz with all correct answers removed.
func (s *QuizService) GetQuizForTaking(ctx context.Context, quizID string) (domain.QuizView, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizView{}, err
	}
	return quiz.View(), nil
}
