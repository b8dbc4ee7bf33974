package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/models"
)

// In-memory repository fakes. They copy records in and out the way a
// database scan would, so callers never share memory with the store.

type fakePointRepo struct {
	mu     sync.Mutex
	nextID int64
	points map[int64]models.MapPoint
}

func newFakePointRepo() *fakePointRepo {
	return &fakePointRepo{points: make(map[int64]models.MapPoint)}
}

func (r *fakePointRepo) List(ctx context.Context) ([]*models.MapPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MapPoint
	for _, p := range r.points {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePointRepo) Create(ctx context.Context, point *models.MapPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	point.ID = r.nextID
	r.points[point.ID] = *point
	return nil
}

func (r *fakePointRepo) GetByID(ctx context.Context, id int64) (*models.MapPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[id]
	if !ok {
		return nil, fmt.Errorf("custom point %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (r *fakePointRepo) Update(ctx context.Context, point *models.MapPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.points[point.ID]; !ok {
		return fmt.Errorf("custom point %d: %w", point.ID, apperr.ErrNotFound)
	}
	r.points[point.ID] = *point
	return nil
}

func (r *fakePointRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.points[id]; !ok {
		return fmt.Errorf("custom point %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.points, id)
	return nil
}

type fakeFriendRepo struct {
	mu      sync.Mutex
	nextID  int64
	friends []models.Friend
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{}
}

func (r *fakeFriendRepo) List(ctx context.Context) ([]*models.Friend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Friend
	for _, f := range r.friends {
		f := f
		out = append(out, &f)
	}
	return out, nil
}

func (r *fakeFriendRepo) Create(ctx context.Context, friend *models.Friend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	friend.ID = r.nextID
	r.friends = append(r.friends, *friend)
	return nil
}

type fakePostcardRepo struct {
	mu        sync.Mutex
	nextID    int64
	postcards map[int64]models.Postcard
}

func newFakePostcardRepo() *fakePostcardRepo {
	return &fakePostcardRepo{postcards: make(map[int64]models.Postcard)}
}

func (r *fakePostcardRepo) List(ctx context.Context) ([]*models.Postcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Postcard
	for _, p := range r.postcards {
		p := p
		out = append(out, &p)
	}
	// newest first, id breaks creation-time ties
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakePostcardRepo) Create(ctx context.Context, postcard *models.Postcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	postcard.ID = r.nextID
	r.postcards[postcard.ID] = *postcard
	return nil
}

func (r *fakePostcardRepo) GetByID(ctx context.Context, id int64) (*models.Postcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postcards[id]
	if !ok {
		return nil, fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (r *fakePostcardRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postcards[id]; !ok {
		return fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.postcards, id)
	return nil
}

func (r *fakePostcardRepo) IncrementLikes(ctx context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postcards[id]
	if !ok {
		return 0, fmt.Errorf("postcard %d: %w", id, apperr.ErrNotFound)
	}
	p.Likes++
	r.postcards[id] = p
	return p.Likes, nil
}
