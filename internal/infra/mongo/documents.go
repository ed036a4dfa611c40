package mongo

import (
	"time"

	"brainy-quiz-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names and field layout match documents written by the previous
// Node/mongoose deployment, so an existing database can be served as is.
const (
	quizCollection = "quizzes"
	userCollection = "users"
)

type questionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	QuestionText  string             `bson:"questionText"`
	Options       []string           `bson:"options"`
	CorrectAnswer string             `bson:"correctAnswer"`
}

type quizDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Category  string             `bson:"category"`
	Questions []questionDoc      `bson:"questions"`
}

type attemptDoc struct {
	QuizID primitive.ObjectID `bson:"quizId"`
	Score  int                `bson:"score"`
	Date   time.Time          `bson:"date"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	QuizzesTaken []attemptDoc       `bson:"quizzesTaken"`
}

func (d quizDoc) toDomain() domain.Quiz {
	questions := make([]domain.Question, 0, len(d.Questions))
	for _, q := range d.Questions {
		questions = append(questions, domain.Question{
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return domain.Quiz{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Category:  d.Category,
		Questions: questions,
	}
}

func (d quizDoc) summary() domain.QuizSummary {
	return domain.QuizSummary{ID: d.ID.Hex(), Title: d.Title, Category: d.Category}
}

func (d userDoc) toDomain() domain.User {
	attempts := make([]domain.Attempt, 0, len(d.QuizzesTaken))
	for _, a := range d.QuizzesTaken {
		attempts = append(attempts, domain.Attempt{
			QuizID: a.QuizID.Hex(),
			Score:  a.Score,
			Date:   a.Date.UTC(),
		})
	}
	return domain.User{ID: d.ID.Hex(), QuizzesTaken: attempts}
}

// objectID parses a hex id, or generates a fresh one when raw is empty.
func objectID(raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NewObjectID(), nil
	}
	return primitive.ObjectIDFromHex(raw)
}
