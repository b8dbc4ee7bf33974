package services

import (
	"context"
	"fmt"
	"time"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/blobstore"
	"cybele-backend/internal/models"
)

// FriendRepository is the persistence contract the friend service depends
// on. Friends are read/create-only.
type FriendRepository interface {
	List(ctx context.Context) ([]*models.Friend, error)
	Create(ctx context.Context, friend *models.Friend) error
}

// FriendService handles friend business logic
type FriendService struct {
	friends FriendRepository
	blobs   blobstore.Store
	events  *EventHub
}

// NewFriendService creates a new friend service
func NewFriendService(friends FriendRepository, blobs blobstore.Store, events *EventHub) *FriendService {
	return &FriendService{
		friends: friends,
		blobs:   blobs,
		events:  events,
	}
}

// FriendInput holds the fields for creating a friend
type FriendInput struct {
	Name    string
	Status  *string
	Country *string
	City    *string
	Lat     float64
	Lng     float64
	Avatar  *Upload
}

// List returns all friends
func (s *FriendService) List(ctx context.Context) ([]*models.Friend, error) {
	return s.friends.List(ctx)
}

// Create stores the optional avatar, then persists a new friend
func (s *FriendService) Create(ctx context.Context, in FriendInput) (*models.Friend, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	var avatarURL *string
	if in.Avatar != nil {
		ref, err := s.blobs.Save(ctx, in.Avatar.Content, in.Avatar.Filename, blobstore.FolderAvatars)
		if err != nil {
			return nil, err
		}
		avatarURL = &ref
	}

	friend := &models.Friend{
		Name:      in.Name,
		Status:    in.Status,
		AvatarURL: avatarURL,
		Country:   in.Country,
		City:      in.City,
		Lat:       in.Lat,
		Lng:       in.Lng,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.friends.Create(ctx, friend); err != nil {
		return nil, err
	}

	s.events.Broadcast(EventFriendCreated, friend)
	return friend, nil
}
