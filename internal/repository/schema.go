package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS custom_points (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		image_url VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS friends (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		status TEXT,
		avatar_url VARCHAR(500),
		country VARCHAR(100),
		city VARCHAR(100),
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS postcards (
		id BIGSERIAL PRIMARY KEY,
		user_name VARCHAR(100) NOT NULL,
		user_avatar VARCHAR(500),
		location VARCHAR(200) NOT NULL,
		country VARCHAR(100) NOT NULL,
		image_url VARCHAR(500) NOT NULL,
		caption TEXT NOT NULL,
		personal_message TEXT NOT NULL,
		date_stamp VARCHAR(100) NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// InitSchema creates the application tables if they do not exist yet.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
