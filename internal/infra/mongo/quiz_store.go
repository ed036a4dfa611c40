package mongo

import (
	"context"
	"errors"
	"fmt"

	"brainy-quiz-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuizStore serves quizzes from the quizzes collection.
type QuizStore struct {
	coll *mongo.Collection
}

func NewQuizStore(db *mongo.Database) *QuizStore {
	return &QuizStore{coll: db.Collection(quizCollection)}
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	var doc quizDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	return s.findSummaries(ctx, bson.M{})
}

func (s *QuizStore) QuizSummaries(ctx context.Context, quizIDs []string) (map[string]domain.QuizSummary, error) {
	summaries := make(map[string]domain.QuizSummary, len(quizIDs))
	oids := make([]primitive.ObjectID, 0, len(quizIDs))
	for _, id := range quizIDs {
		// Ids that cannot exist here simply resolve to nothing.
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return summaries, nil
	}

	list, err := s.findSummaries(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	for _, summary := range list {
		summaries[summary.ID] = summary
	}
	return summaries, nil
}

func (s *QuizStore) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	oid, err := objectID(quiz.ID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: id %q is not an ObjectID", domain.ErrInvalidQuiz, quiz.ID)
	}
	doc := quizDoc{
		ID:        oid,
		Title:     quiz.Title,
		Category:  quiz.Category,
		Questions: make([]questionDoc, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		doc.Questions = append(doc.Questions, questionDoc{
			ID:            primitive.NewObjectID(),
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *QuizStore) findSummaries(ctx context.Context, filter bson.M) ([]domain.QuizSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"questions": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find quizzes: %w", err)
	}
	var docs []quizDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode quizzes: %w", err)
	}
	summaries := make([]domain.QuizSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, doc.summary())
	}
	return summaries, nil
}
