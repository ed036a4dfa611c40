package domain

import "errors"

var (
	// ErrQuizNotFound indicates no quiz exists for the requested id.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrUserNotFound indicates no user record exists for the caller.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidSubmission is returned for malformed answer payloads.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrInvalidQuiz is returned when quiz content fails validation before it is stored.
	ErrInvalidQuiz = errors.New("invalid quiz")
)
