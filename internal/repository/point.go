package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/models"
)

// PointRepository handles database operations for map points
type PointRepository struct {
	db *pgxpool.Pool
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *pgxpool.Pool) *PointRepository {
	return &PointRepository{db: db}
}

// List retrieves all map points
func (r *PointRepository) List(ctx context.Context) ([]*models.MapPoint, error) {
	query := `
		SELECT id, name, description, lat, lng, image_url, created_at, updated_at
		FROM custom_points
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}
	defer rows.Close()

	var points []*models.MapPoint
	for rows.Next() {
		var p models.MapPoint
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Lat, &p.Lng,
			&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating points: %w", err)
	}

	return points, nil
}

// Create inserts a new map point and fills in its assigned id
func (r *PointRepository) Create(ctx context.Context, point *models.MapPoint) error {
	query := `
		INSERT INTO custom_points (name, description, lat, lng, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		point.Name, point.Description, point.Lat, point.Lng,
		point.ImageURL, point.CreatedAt, point.UpdatedAt,
	).Scan(&point.ID)
	if err != nil {
		return fmt.Errorf("failed to create point: %w", err)
	}
	return nil
}

// GetByID retrieves a map point by ID
func (r *PointRepository) GetByID(ctx context.Context, id int64) (*models.MapPoint, error) {
	query := `
		SELECT id, name, description, lat, lng, image_url, created_at, updated_at
		FROM custom_points
		WHERE id = $1
	`
	var p models.MapPoint
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Lat, &p.Lng,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("custom point %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	return &p, nil
}

// Update writes back all mutable fields of a map point
func (r *PointRepository) Update(ctx context.Context, point *models.MapPoint) error {
	query := `
		UPDATE custom_points
		SET name = $1, description = $2, lat = $3, lng = $4, image_url = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query,
		point.Name, point.Description, point.Lat, point.Lng,
		point.ImageURL, point.UpdatedAt, point.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update point: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("custom point %d: %w", point.ID, apperr.ErrNotFound)
	}
	return nil
}

// Delete removes a map point by ID
func (r *PointRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM custom_points WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("custom point %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
