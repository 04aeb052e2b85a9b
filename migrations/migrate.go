package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedded embed.FS

// Up runs all pending SQL migrations embedded in the binary.
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedded)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
