package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"brainy-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizStore keeps each quiz as a JSONB document in the quizzes table.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	quiz.ID = quizID
	return quiz, nil
}

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, data->>'title', data->>'category' FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return collectSummaries(rows)
}

func (s *QuizStore) QuizSummaries(ctx context.Context, quizIDs []string) (map[string]domain.QuizSummary, error) {
	summaries := make(map[string]domain.QuizSummary, len(quizIDs))
	if len(quizIDs) == 0 {
		return summaries, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id, data->>'title', data->>'category' FROM quizzes WHERE id = ANY($1)`, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve quizzes: %w", err)
	}
	list, err := collectSummaries(rows)
	if err != nil {
		return nil, err
	}
	for _, summary := range list {
		summaries[summary.ID] = summary
	}
	return summaries, nil
}

func (s *QuizStore) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("marshal quiz: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO quizzes (id, data) VALUES ($1, $2::jsonb)`, quiz.ID, string(data)); err != nil {
		return domain.Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return quiz, nil
}

func collectSummaries(rows pgx.Rows) ([]domain.QuizSummary, error) {
	defer rows.Close()
	summaries := make([]domain.QuizSummary, 0)
	for rows.Next() {
		var (
			summary  domain.QuizSummary
			title    *string
			category *string
		)
		if err := rows.Scan(&summary.ID, &title, &category); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		if title != nil {
			summary.Title = *title
		}
		if category != nil {
			summary.Category = *category
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}
	return summaries, nil
}
