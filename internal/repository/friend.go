package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"cybele-backend/internal/models"
)

// FriendRepository handles database operations for friends
type FriendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// List retrieves all friends
func (r *FriendRepository) List(ctx context.Context) ([]*models.Friend, error) {
	query := `
		SELECT id, name, status, avatar_url, country, city, lat, lng, created_at
		FROM friends
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		var f models.Friend
		err := rows.Scan(
			&f.ID, &f.Name, &f.Status, &f.AvatarURL, &f.Country, &f.City,
			&f.Lat, &f.Lng, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}

	return friends, nil
}

// Create inserts a new friend and fills in its assigned id
func (r *FriendRepository) Create(ctx context.Context, friend *models.Friend) error {
	query := `
		INSERT INTO friends (name, status, avatar_url, country, city, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		friend.Name, friend.Status, friend.AvatarURL, friend.Country,
		friend.City, friend.Lat, friend.Lng, friend.CreatedAt,
	).Scan(&friend.ID)
	if err != nil {
		return fmt.Errorf("failed to create friend: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the sample friends when the collection is empty. It is
// idempotent across restarts because it only fires on an empty table.
func (r *FriendRepository) SeedIfEmpty(ctx context.Context) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM friends`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count friends: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, friend := range sampleFriends() {
		if err := r.Create(ctx, friend); err != nil {
			return fmt.Errorf("failed to seed friends: %w", err)
		}
	}
	log.Info().Int("count", len(sampleFriends())).Msg("Seeded sample friends")
	return nil
}

func sampleFriends() []*models.Friend {
	now := time.Now().UTC()
	str := func(s string) *string { return &s }
	return []*models.Friend{
		{
			Name:      "Emma Johnson",
			Status:    str("Loving the café culture in Paris! ☕"),
			AvatarURL: str("https://images.unsplash.com/photo-1494790108755-2616b612b3fd?w=150&h=150&fit=crop&crop=face"),
			Country:   str("France"),
			City:      str("Paris"),
			Lat:       48.8566,
			Lng:       2.3522,
			CreatedAt: now,
		},
		{
			Name:      "Marco Silva",
			Status:    str("Study sessions at the library 📚"),
			AvatarURL: str("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"),
			Country:   str("Japan"),
			City:      str("Tokyo"),
			Lat:       35.6762,
			Lng:       139.6503,
			CreatedAt: now,
		},
		{
			Name:      "Sarah Chen",
			Status:    str("Exploring ancient history 🏛️"),
			AvatarURL: str("https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face"),
			Country:   str("Italy"),
			City:      str("Rome"),
			Lat:       41.9028,
			Lng:       12.4964,
			CreatedAt: now,
		},
	}
}
