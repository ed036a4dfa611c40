package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
)

//go:embed 0003_create_quiz_attempts.sql
var createQuizAttemptsSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.ExecContext(ctx, createQuizAttemptsSQL); err != nil {
				return err
			}
			// History reads scan one user's attempts in insertion order.
			_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS quiz_attempts_user_id_idx ON quiz_attempts (user_id, id)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS quiz_attempts`)
			return err
		},
	)
}
