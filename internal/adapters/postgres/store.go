// SPDX-License-Identifier: AGPL-3.0-or-later

// Package postgres provides the PostgreSQL implementation of render
// analytics storage.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Store holds the database connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store with a database connection.
func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RenderRepository returns a RenderRepository backed by this store.
func (s *Store) RenderRepository() *RenderRepository {
	return NewRenderRepository(s.db)
}
