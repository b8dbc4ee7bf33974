package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/models"
)

// PostcardRepository handles database operations for postcards
type PostcardRepository struct {
	db *pgxpool.Pool
}

// NewPostcardRepository creates a new postcard repository
func NewPostcardRepository(db *pgxpool.Pool) *PostcardRepository {
	return &PostcardRepository{db: db}
}

// List retrieves all postcards, newest first
func (r *PostcardRepository) List(ctx context.Context) ([]*models.Postcard, error) {
	query := `
		SELECT id, user_name, user_avatar, location, country, image_url, caption,
		       personal_message, date_stamp, lat, lng, likes, comments, created_at, updated_at
		FROM postcards
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list postcards: %w", err)
	}
	defer rows.Close()

	var postcards []*models.Postcard
	for rows.Next() {
		var p models.Postcard
		err := rows.Scan(
			&p.ID, &p.UserName, &p.UserAvatar, &p.Location, &p.Country,
			&p.ImageURL, &p.Caption, &p.PersonalMessage, &p.DateStamp,
			&p.Lat, &p.Lng, &p.Likes, &p.Comments, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan postcard: %w", err)
		}
		postcards = append(postcards, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating postcards: %w", err)
	}

	return postcards, nil
}

// Create inserts a new postcard and fills in its assigned id
func (r *PostcardRepository) Create(ctx context.Context, postcard *models.Postcard) error {
	query := `
		INSERT INTO postcards (user_name, user_avatar, location, country, image_url, caption,
		                       personal_message, date_stamp, lat, lng, likes, comments,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		postcard.UserName, postcard.UserAvatar, postcard.Location, postcard.Country,
		postcard.ImageURL, postcard.Caption, postcard.PersonalMessage, postcard.DateStamp,
		postcard.Lat, postcard.Lng, postcard.Likes, postcard.Comments,
		postcard.CreatedAt, postcard.UpdatedAt,
	).Scan(&postcard.ID)
	if err != nil {
		return fmt.Errorf("failed to create postcard: %w", err)
	}
	return nil
}

// GetByID retrieves a postcard by ID
func (r *PostcardRepository) GetByID(ctx context.Context, id int64) (*models.Postcard, error) {
	query := `
		SELECT id, user_name, user_avatar, location, country, image_url, caption,
		       personal_message, date_stamp, lat, lng, likes, comments, created_at, updated_at
		FROM postcards
		WHERE id = $1
	`
	var p models.Postcard
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserName, &p.UserAvatar, &p.Location, &p.Country,
		&p.ImageURL, &p.Caption, &p.PersonalMessage, &p.DateStamp,
		&p.Lat, &p.Lng, &p.Likes, &p.Comments, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get postcard: %w", err)
	}
	return &p, nil
}

// Delete removes a postcard by ID
func (r *PostcardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM postcards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete postcard: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// IncrementLikes adds one like to a postcard and returns the new count. The
// increment happens in a single UPDATE so concurrent calls never lose likes.
func (r *PostcardRepository) IncrementLikes(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE postcards
		SET likes = likes + 1, updated_at = $2
		WHERE id = $1
		RETURNING likes
	`
	var likes int
	err := r.db.QueryRow(ctx, query, id, time.Now().UTC()).Scan(&likes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return likes, nil
}
