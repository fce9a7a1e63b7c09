package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements is the catalog schema, applied in order on startup.
// The UNIQUE constraints on reviews(user_id, book_id) and the composite
// primary key on user_favourites are load-bearing: duplicate reviews and
// favourites are rejected by the database itself, not only by the
// service-level pre-checks.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id          BIGSERIAL PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (first_name, last_name)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id    BIGSERIAL PRIMARY KEY,
		name  TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id           BIGSERIAL PRIMARY KEY,
		author_id    BIGINT NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		category_id  BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             BIGSERIAL PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE,
		password_hash  TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id     BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		rating      INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		review      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, book_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_favourites (
		user_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id  BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, book_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_books_category_id ON books(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews(book_id)`,
}

// EnsureSchema applies the schema statements. Every statement is
// idempotent, so this is safe to run on every startup.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	log.Println("[DATABASE] Ensuring schema...")

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Println("[DATABASE] Schema is up to date")
	return nil
}
