package config

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func NewPostgres(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("tracker: open postgres: %w", err)
	}
	// Each ingested sample touches several repositories, so cap the pool
	// instead of taking the driver default of unlimited connections.
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracker: ping postgres: %w", err)
	}
	return db, nil
}
