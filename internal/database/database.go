package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool holds connection pool limits. Zero values fall back to the defaults below.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const pingTimeout = 5 * time.Second

// New opens a pgx-backed *sql.DB and verifies the connection.
func New(connStr string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(orDefault(pool.MaxOpenConns, 25))
	db.SetMaxIdleConns(orDefault(pool.MaxIdleConns, 5))
	db.SetConnMaxLifetime(orDefault(pool.ConnMaxLifetime, 5*time.Minute))

	return db, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}

	return v
}
