package cli

import (
	"context"
	"fmt"
	"log"

	"brainy-quiz-service/internal/app"
	"brainy-quiz-service/internal/config"
	"brainy-quiz-service/internal/domain"
	"brainy-quiz-service/internal/infra/memory"
	mongostore "brainy-quiz-service/internal/infra/mongo"
	pgstore "brainy-quiz-service/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stores bundles the repositories for the configured storage driver.
type stores struct {
	driver  string
	quizzes app.QuizRepository
	users   app.UserRepository
	close   func()
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	driver := cfg.StorageDriver()
	switch driver {
	case config.DriverPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return stores{}, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return stores{}, fmt.Errorf("connect postgres: %w", err)
		}
		return stores{
			driver:  driver,
			quizzes: pgstore.NewQuizStore(pool),
			users:   pgstore.NewUserStore(pool),
			close:   pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return stores{}, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return stores{}, fmt.Errorf("ping mongo: %w", err)
		}
		db := client.Database(cfg.MongoDatabase())
		return stores{
			driver:  driver,
			quizzes: mongostore.NewQuizStore(db),
			users:   mongostore.NewUserStore(db),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Printf("disconnect mongo: %v", err)
				}
			},
		}, nil

	default:
		users := memory.NewUserStore()
		if _, err := users.CreateUser(ctx, domain.User{ID: demoUserID}); err != nil {
			return stores{}, err
		}
		return stores{
			driver:  config.DriverMemory,
			quizzes: memory.NewQuizStoreWith(sampleQuizzes()...),
			users:   users,
			close:   func() {},
		}, nil
	}
}

const demoUserID = "demo-user"

// sampleQuizzes backs the memory driver so the service is usable without a database.
func sampleQuizzes() []domain.Quiz {
	return []domain.Quiz{
		{
			ID:       "quiz-1",
			Title:    "Basic Arithmetic",
			Category: "math",
			Questions: []domain.Question{
				{QuestionText: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
				{QuestionText: "What is 3 x 3?", Options: []string{"6", "9", "12"}, CorrectAnswer: "9"},
			},
		},
		{
			ID:       "quiz-2",
			Title:    "European Capitals",
			Category: "geography",
			Questions: []domain.Question{
				{QuestionText: "Capital of France?", Options: []string{"Lyon", "Paris", "Nice"}, CorrectAnswer: "Paris"},
				{QuestionText: "Capital of Spain?", Options: []string{"Madrid", "Seville"}, CorrectAnswer: "Madrid"},
			},
		},
	}
}
