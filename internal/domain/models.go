package domain

import "time"

// Question is embedded in a Quiz. Answers are matched to questions by position.
type Question struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is the full stored quiz, correct answers included.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Questions []Question `json:"questions"`
}

// QuizSummary is a quiz without its questions.
type QuizSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// PublicQuestion is a question as shown to someone taking the quiz.
type PublicQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// QuizView is the answer-free projection served before an attempt.
type QuizView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Category  string           `json:"category"`
	Questions []PublicQuestion `json:"questions"`
}

// Summary drops the questions.
func (q Quiz) Summary() QuizSummary {
	return QuizSummary{ID: q.ID, Title: q.Title, Category: q.Category}
}

// View strips every correct answer.
func (q Quiz) View() QuizView {
	questions := make([]PublicQuestion, 0, len(q.Questions))
	for _, question := range q.Questions {
		options := make([]string, len(question.Options))
		copy(options, question.Options)
		questions = append(questions, PublicQuestion{
			QuestionText: question.QuestionText,
			Options:      options,
		})
	}
	return QuizView{
		ID:        q.ID,
		Title:     q.Title,
		Category:  q.Category,
		Questions: questions,
	}
}

// Attempt is one scored submission. It is never modified once recorded.
type Attempt struct {
	QuizID string    `json:"quizId"`
	Score  int       `json:"score"`
	Date   time.Time `json:"date"`
}

// User holds the attempt history in insertion (chronological) order.
type User struct {
	ID           string    `json:"id"`
	QuizzesTaken []Attempt `json:"quizzesTaken"`
}

// SubmissionResult is returned to the caller after scoring.
type SubmissionResult struct {
	Score int `json:"score"`
}

// TakenQuiz is the summary view of one attempt.
type TakenQuiz struct {
	QuizID      string `json:"quizId"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	QuizDeleted bool   `json:"quizDeleted,omitempty"`
}

// HistoryEntry is the detailed view of one attempt. It is also the payload of the attempt feed.
type HistoryEntry struct {
	QuizID      string    `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	Score       int       `json:"score"`
	Date        time.Time `json:"date"`
	QuizDeleted bool      `json:"quizDeleted,omitempty"`
}
