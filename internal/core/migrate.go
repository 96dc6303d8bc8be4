// AngelaMos | 2026
// migrate.go

package core

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies goose migrations embedded in the binary. command is one of
// up, down, status, reset.
func Migrate(db *sql.DB, command string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	var err error
	switch command {
	case "", "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	case "reset":
		err = goose.Reset(db, "migrations")
	default:
		return fmt.Errorf("unknown migrate command %q: %w", command, ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
