package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInitTables, downInitTables)
}

func upInitTables(ctx context.Context, tx *sql.Tx) error {
	// Create users table
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			birthday VARCHAR(5) NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return err
	}

	// Create expenses table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE expenses (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL,
			description VARCHAR(255) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			category VARCHAR(32) NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX idx_expenses_user_id ON expenses (user_id);
	`)
	if err != nil {
		return err
	}

	// Create photos table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE photos (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL,
			data TEXT NOT NULL,
			mime VARCHAR(64) NOT NULL DEFAULT '',
			caption TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Create messages table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE messages (
			id UUID PRIMARY KEY,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			timestamp BIGINT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX idx_messages_timestamp ON messages (timestamp);
	`)
	if err != nil {
		return err
	}

	// Create todos table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE todos (
			id UUID PRIMARY KEY,
			text TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		);
	`)
	if err != nil {
		return err
	}

	// Create places table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE places (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(32) NOT NULL,
			visited BOOLEAN NOT NULL DEFAULT FALSE,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			description TEXT NOT NULL DEFAULT '',
			sources TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return err
	}

	// Create meta table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE meta (
			key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func downInitTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"meta", "places", "todos", "messages", "photos", "expenses", "users"} {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table+`;`); err != nil {
			return err
		}
	}
	return nil
}
