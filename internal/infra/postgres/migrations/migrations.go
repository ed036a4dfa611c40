// Package migrations holds the bun migrations for the Postgres storage driver.
// Each migration file registers itself from init; bun derives the migration
// name from the registering file's name.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
