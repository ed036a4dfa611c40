package app

import (
	"context"
	"errors"
	"log"
	"time"

	"brainy-quiz-service/internal/domain"
)

// UserRepository stores users and their attempt history.
type UserRepository interface {
	// GetUser returns the user with attempts in insertion order, or domain.ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (domain.User, error)
	// AppendAttempt adds one attempt in a single atomic write.
	// It returns domain.ErrUserNotFound when the user does not exist.
	AppendAttempt(ctx context.Context, userID string, attempt domain.Attempt) error
	// CreateUser stores a user, assigning an id when it is empty.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

// AttemptFeed fans recorded attempts out to live subscribers of a user.
type AttemptFeed interface {
	Publish(ctx context.Context, userID string, entry domain.HistoryEntry) error
	// Subscribe returns a channel of entries for userID.
	// The caller must invoke the returned cancel function to avoid leaks.
	Subscribe(ctx context.Context, userID string) (<-chan domain.HistoryEntry, func(), error)
}

// ScoringService scores submissions and records them in the caller's history.
type ScoringService struct {
	quizzes QuizRepository
	users   UserRepository
	feed    AttemptFeed
	now     func() time.Time
}

// NewScoringService wires the scoring use case. feed may be nil.
func NewScoringService(quizzes QuizRepository, users UserRepository, feed AttemptFeed) *ScoringService {
	return NewScoringServiceWithClock(quizzes, users, feed, time.Now)
}

// NewScoringServiceWithClock is test-only for deterministic attempt dates.
func NewScoringServiceWithClock(quizzes QuizRepository, users UserRepository, feed AttemptFeed, now func() time.Time) *ScoringService {
	return &ScoringService{quizzes: quizzes, users: users, feed: feed, now: now}
}

// Submit scores userAnswers against the quiz and appends an attempt for callerID.
// A caller without a user record still gets a score; nothing is recorded for them.
func (s *ScoringService) Submit(ctx context.Context, quizID, callerID string, userAnswers []string) (domain.SubmissionResult, error) {
	if userAnswers == nil {
		return domain.SubmissionResult{}, domain.ErrInvalidSubmission
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	score := scoreSubmission(quiz, userAnswers)
	attempt := domain.Attempt{
		QuizID: quiz.ID,
		Score:  score,
		Date:   s.now().UTC(),
	}

	err = s.users.AppendAttempt(ctx, callerID, attempt)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.SubmissionResult{Score: score}, nil
	case err != nil:
		return domain.SubmissionResult{}, err
	}

	if s.feed != nil {
		entry := domain.HistoryEntry{
			QuizID:    attempt.QuizID,
			QuizTitle: quiz.Title,
			Score:     attempt.Score,
			Date:      attempt.Date,
		}
		if err := s.feed.Publish(ctx, callerID, entry); err != nil {
			log.Printf("publish attempt for user %s: %v", callerID, err)
		}
	}
	return domain.SubmissionResult{Score: score}, nil
}

// scoreSubmission counts positions where the answer equals the question's correct answer.
// Answers past the last question are ignored and unanswered questions score nothing.
func scoreSubmission(quiz domain.Quiz, userAnswers []string) int {
	score := 0
	for i, answer := range userAnswers {
		if i >= len(quiz.Questions) {
			break
		}
		if quiz.Questions[i].CorrectAnswer == answer {
			score++
		}
	}
	return score
}
