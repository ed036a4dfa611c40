package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"brainy-quiz-service/internal/app"
	"brainy-quiz-service/internal/config"
	"brainy-quiz-service/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Quizzes []seedQuiz `yaml:"quizzes" validate:"dive"`
	Users   []seedUser `yaml:"users" validate:"dive"`
}

type seedQuiz struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title" validate:"required"`
	Category  string         `yaml:"category" validate:"required"`
	Questions []seedQuestion `yaml:"questions" validate:"required,min=1,dive"`
}

type seedQuestion struct {
	QuestionText  string   `yaml:"questionText" validate:"required"`
	Options       []string `yaml:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `yaml:"correctAnswer" validate:"required"`
}

type seedUser struct {
	ID           string        `yaml:"id"`
	QuizzesTaken []seedAttempt `yaml:"quizzesTaken" validate:"dive"`
}

type seedAttempt struct {
	QuizID string    `yaml:"quizId" validate:"required"`
	Score  int       `yaml:"score" validate:"gte=0"`
	Date   time.Time `yaml:"date"`
}

// NewSeedCmd loads quizzes and users from a YAML fixture into the configured store.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load quizzes and users from a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.StorageDriver() == config.DriverMemory {
				return fmt.Errorf("seed needs a persistent storage driver (postgres or mongo)")
			}
			fixture, err := loadSeedFile(file)
			if err != nil {
				return err
			}
			st, err := openStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()
			return applySeed(cmd.Context(), fixture, st.quizzes, st.users, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&file, "file", "config/seed.yaml", "path to the YAML fixture")
	return cmd
}

func loadSeedFile(path string) (seedFile, error) {
	var fixture seedFile
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fixture, fmt.Errorf("parse seed file: %w", err)
	}
	if err := validator.New().Struct(fixture); err != nil {
		return fixture, fmt.Errorf("%w: %v", domain.ErrInvalidQuiz, err)
	}
	for _, q := range fixture.Quizzes {
		for i, question := range q.Questions {
			if !containsString(question.Options, question.CorrectAnswer) {
				return fixture, fmt.Errorf("%w: quiz %q question %d: correct answer %q is not an option",
					domain.ErrInvalidQuiz, q.Title, i+1, question.CorrectAnswer)
			}
		}
	}
	return fixture, nil
}

// applySeed writes quizzes first so user attempts can reference the ids they were stored under.
func applySeed(ctx context.Context, fixture seedFile, quizzes app.QuizRepository, users app.UserRepository, out io.Writer) error {
	ids := make(map[string]string, len(fixture.Quizzes))
	for _, q := range fixture.Quizzes {
		quiz := domain.Quiz{ID: q.ID, Title: q.Title, Category: q.Category}
		for _, question := range q.Questions {
			quiz.Questions = append(quiz.Questions, domain.Question{
				QuestionText:  question.QuestionText,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
			})
		}
		created, err := quizzes.CreateQuiz(ctx, quiz)
		if err != nil {
			return fmt.Errorf("seed quiz %q: %w", q.Title, err)
		}
		if q.ID != "" {
			ids[q.ID] = created.ID
		}
		fmt.Fprintf(out, "quiz %s\t%s\n", created.ID, created.Title)
	}

	for _, u := range fixture.Users {
		user := domain.User{ID: u.ID}
		for _, a := range u.QuizzesTaken {
			quizID := a.QuizID
			if mapped, ok := ids[quizID]; ok {
				quizID = mapped
			}
			user.QuizzesTaken = append(user.QuizzesTaken, domain.Attempt{QuizID: quizID, Score: a.Score, Date: a.Date})
		}
		created, err := users.CreateUser(ctx, user)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.ID, err)
		}
		fmt.Fprintf(out, "user %s\t%d attempts\n", created.ID, len(created.QuizzesTaken))
	}
	return nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
