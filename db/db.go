package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the shared database connection pool.
var DB *sql.DB

// Init opens the Postgres connection and validates connectivity. The DSN is
// assembled by the config package.
func Init(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("database connection string is empty. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	var err error
	DB, err = sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := DB.PingContext(context.Background()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
