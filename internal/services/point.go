package services

import (
	"context"
	"fmt"
	"time"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/blobstore"
	"cybele-backend/internal/models"
)

// Upload carries the raw bytes and declared filename of an uploaded file
type Upload struct {
	Content  []byte
	Filename string
}

// PointRepository is the persistence contract the point service depends on
type PointRepository interface {
	List(ctx context.Context) ([]*models.MapPoint, error)
	Create(ctx context.Context, point *models.MapPoint) error
	GetByID(ctx context.Context, id int64) (*models.MapPoint, error)
	Update(ctx context.Context, point *models.MapPoint) error
	Delete(ctx context.Context, id int64) error
}

// PointService handles map point business logic
type PointService struct {
	points PointRepository
	blobs  blobstore.Store
	events *EventHub
}

// NewPointService creates a new point service
func NewPointService(points PointRepository, blobs blobstore.Store, events *EventHub) *PointService {
	return &PointService{
		points: points,
		blobs:  blobs,
		events: events,
	}
}

// PointInput holds the fields for creating a map point
type PointInput struct {
	Name        string
	Description *string
	Lat         float64
	Lng         float64
	Image       *Upload
}

// PointPatch holds a partial update; nil fields are left untouched
type PointPatch struct {
	Name        *string
	Description *string
	Lat         *float64
	Lng         *float64
	Image       *Upload
}

// List returns all map points
func (s *PointService) List(ctx context.Context) ([]*models.MapPoint, error) {
	return s.points.List(ctx)
}

// Create stores the optional image, then persists a new map point
func (s *PointService) Create(ctx context.Context, in PointInput) (*models.MapPoint, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	var imageURL *string
	if in.Image != nil {
		ref, err := s.blobs.Save(ctx, in.Image.Content, in.Image.Filename, blobstore.FolderImages)
		if err != nil {
			return nil, err
		}
		imageURL = &ref
	}

	now := time.Now().UTC()
	point := &models.MapPoint{
		Name:        in.Name,
		Description: in.Description,
		Lat:         in.Lat,
		Lng:         in.Lng,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.points.Create(ctx, point); err != nil {
		return nil, err
	}

	s.events.Broadcast(EventPointCreated, point)
	return point, nil
}

// Update applies a partial update to a map point. When the patch carries a
// new image it is stored before the record commit, so a blob failure leaves
// the point untouched; the prior image is then deleted best-effort.
func (s *PointService) Update(ctx context.Context, id int64, patch PointPatch) (*models.MapPoint, error) {
	point, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		point.Name = *patch.Name
	}
	if patch.Description != nil {
		point.Description = patch.Description
	}
	if patch.Lat != nil {
		point.Lat = *patch.Lat
	}
	if patch.Lng != nil {
		point.Lng = *patch.Lng
	}
	if patch.Image != nil {
		ref, err := s.blobs.Save(ctx, patch.Image.Content, patch.Image.Filename, blobstore.FolderImages)
		if err != nil {
			return nil, err
		}
		if point.ImageURL != nil {
			s.blobs.Delete(ctx, *point.ImageURL)
		}
		point.ImageURL = &ref
	}

	point.UpdatedAt = time.Now().UTC()
	if err := s.points.Update(ctx, point); err != nil {
		return nil, err
	}

	s.events.Broadcast(EventPointUpdated, point)
	return point, nil
}

// Delete removes a map point and, best-effort, its stored image
func (s *PointService) Delete(ctx context.Context, id int64) error {
	point, err := s.points.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.points.Delete(ctx, id); err != nil {
		return err
	}

	if point.ImageURL != nil {
		s.blobs.Delete(ctx, *point.ImageURL)
	}

	s.events.Broadcast(EventPointDeleted, map[string]int64{"id": id})
	return nil
}
