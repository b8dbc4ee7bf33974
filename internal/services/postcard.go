package services

import (
	"context"
	"fmt"
	"time"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/blobstore"
	"cybele-backend/internal/models"
)

// PostcardRepository is the persistence contract the postcard service
// depends on
type PostcardRepository interface {
	List(ctx context.Context) ([]*models.Postcard, error)
	Create(ctx context.Context, postcard *models.Postcard) error
	GetByID(ctx context.Context, id int64) (*models.Postcard, error)
	Delete(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (int, error)
}

// PostcardService handles postcard business logic
type PostcardService struct {
	postcards PostcardRepository
	blobs     blobstore.Store
	events    *EventHub
}

// NewPostcardService creates a new postcard service
func NewPostcardService(postcards PostcardRepository, blobs blobstore.Store, events *EventHub) *PostcardService {
	return &PostcardService{
		postcards: postcards,
		blobs:     blobs,
		events:    events,
	}
}

// PostcardInput holds the fields for creating a postcard. Image is
// mandatory, UserAvatar is optional.
type PostcardInput struct {
	UserName        string
	Location        string
	Country         string
	Caption         string
	PersonalMessage string
	DateStamp       string
	Lat             float64
	Lng             float64
	Image           *Upload
	UserAvatar      *Upload
}

func (in *PostcardInput) validate() error {
	required := map[string]string{
		"user_name":        in.UserName,
		"location":         in.Location,
		"country":          in.Country,
		"caption":          in.Caption,
		"personal_message": in.PersonalMessage,
		"date_stamp":       in.DateStamp,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required", apperr.ErrValidation, field)
		}
	}
	if in.Image == nil {
		return fmt.Errorf("%w: image is required", apperr.ErrValidation)
	}
	return nil
}

// List returns all postcards, newest first
func (s *PostcardService) List(ctx context.Context) ([]*models.Postcard, error) {
	return s.postcards.List(ctx)
}

// Create validates the input, stores the image and optional avatar, then
// persists a new postcard. Validation runs before any blob or database
// write.
func (s *PostcardService) Create(ctx context.Context, in PostcardInput) (*models.Postcard, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	imageURL, err := s.blobs.Save(ctx, in.Image.Content, in.Image.Filename, blobstore.FolderImages)
	if err != nil {
		return nil, err
	}

	var avatarURL *string
	if in.UserAvatar != nil {
		ref, err := s.blobs.Save(ctx, in.UserAvatar.Content, in.UserAvatar.Filename, blobstore.FolderAvatars)
		if err != nil {
			// The image went in first; take it back out so the failed
			// create leaves nothing behind.
			s.blobs.Delete(ctx, imageURL)
			return nil, err
		}
		avatarURL = &ref
	}

	now := time.Now().UTC()
	postcard := &models.Postcard{
		UserName:        in.UserName,
		UserAvatar:      avatarURL,
		Location:        in.Location,
		Country:         in.Country,
		ImageURL:        imageURL,
		Caption:         in.Caption,
		PersonalMessage: in.PersonalMessage,
		DateStamp:       in.DateStamp,
		Lat:             in.Lat,
		Lng:             in.Lng,
		Likes:           0,
		Comments:        0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.postcards.Create(ctx, postcard); err != nil {
		return nil, err
	}

	s.events.Broadcast(EventPostcardCreated, postcard)
	return postcard, nil
}

// Delete removes a postcard and, best-effort, its image and avatar blobs
func (s *PostcardService) Delete(ctx context.Context, id int64) error {
	postcard, err := s.postcards.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.postcards.Delete(ctx, id); err != nil {
		return err
	}

	s.blobs.Delete(ctx, postcard.ImageURL)
	if postcard.UserAvatar != nil {
		s.blobs.Delete(ctx, *postcard.UserAvatar)
	}

	s.events.Broadcast(EventPostcardDeleted, map[string]int64{"id": id})
	return nil
}

// Like atomically increments a postcard's like counter and returns the new
// count
func (s *PostcardService) Like(ctx context.Context, id int64) (int, error) {
	likes, err := s.postcards.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}

	s.events.Broadcast(EventPostcardLiked, map[string]interface{}{"id": id, "likes": likes})
	return likes, nil
}
