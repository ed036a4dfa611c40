package mongo

import (
	"context"
	"errors"
	"fmt"

	"brainy-quiz-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore keeps each user's attempts embedded in the user document.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(userCollection)}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	var doc userDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendAttempt pushes onto quizzesTaken in a single document update.
func (s *UserStore) AppendAttempt(ctx context.Context, userID string, attempt domain.Attempt) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	quizOID, err := primitive.ObjectIDFromHex(attempt.QuizID)
	if err != nil {
		return fmt.Errorf("append attempt: quiz id %q: %w", attempt.QuizID, err)
	}

	update := bson.M{"$push": bson.M{"quizzesTaken": attemptDoc{
		QuizID: quizOID,
		Score:  attempt.Score,
		Date:   attempt.Date,
	}}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	oid, err := objectID(user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user id %q is not an ObjectID: %w", user.ID, err)
	}
	doc := userDoc{ID: oid, QuizzesTaken: make([]attemptDoc, 0, len(user.QuizzesTaken))}
	for _, a := range user.QuizzesTaken {
		quizOID, err := primitive.ObjectIDFromHex(a.QuizID)
		if err != nil {
			return domain.User{}, fmt.Errorf("attempt quiz id %q: %w", a.QuizID, err)
		}
		doc.QuizzesTaken = append(doc.QuizzesTaken, attemptDoc{QuizID: quizOID, Score: a.Score, Date: a.Date})
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}
