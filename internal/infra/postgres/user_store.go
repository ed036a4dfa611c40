package postgres

import (
	"context"
	"errors"
	"fmt"

	"brainy-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// UserStore keeps users in the users table and their attempts in quiz_attempts.
// quiz_attempts.quiz_id is deliberately not a foreign key: quizzes may be deleted
// while the attempts that reference them remain.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var id string
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE id=$1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT quiz_id, score, taken_at FROM quiz_attempts WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load attempts: %w", err)
	}
	defer rows.Close()

	user := domain.User{ID: id, QuizzesTaken: make([]domain.Attempt, 0)}
	for rows.Next() {
		var attempt domain.Attempt
		if err := rows.Scan(&attempt.QuizID, &attempt.Score, &attempt.Date); err != nil {
			return domain.User{}, fmt.Errorf("scan attempt: %w", err)
		}
		attempt.Date = attempt.Date.UTC()
		user.QuizzesTaken = append(user.QuizzesTaken, attempt)
	}
	if err := rows.Err(); err != nil {
		return domain.User{}, fmt.Errorf("iterate attempts: %w", err)
	}
	return user, nil
}

// AppendAttempt inserts the attempt only if the user exists, in one statement.
func (s *UserStore) AppendAttempt(ctx context.Context, userID string, attempt domain.Attempt) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO quiz_attempts (user_id, quiz_id, score, taken_at)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM users WHERE id=$1)`,
		userID, attempt.QuizID, attempt.Score, attempt.Date)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1)`, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	for _, attempt := range user.QuizzesTaken {
		if _, err := tx.Exec(ctx, `INSERT INTO quiz_attempts (user_id, quiz_id, score, taken_at) VALUES ($1, $2, $3, $4)`,
			user.ID, attempt.QuizID, attempt.Score, attempt.Date); err != nil {
			return domain.User{}, fmt.Errorf("insert attempt: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("commit: %w", err)
	}
	if user.QuizzesTaken == nil {
		user.QuizzesTaken = make([]domain.Attempt, 0)
	}
	return user, nil
}
