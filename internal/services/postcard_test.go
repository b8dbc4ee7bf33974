package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cybele-backend/internal/apperr"
)

func validPostcardInput(t *testing.T) PostcardInput {
	return PostcardInput{
		UserName:        "Emma Johnson",
		Location:        "Paris",
		Country:         "France",
		Caption:         "Bonjour!",
		PersonalMessage: "Wish you were here",
		DateStamp:       "JUN 15 2024",
		Lat:             48.8566,
		Lng:             2.3522,
		Image:           testImage(t),
	}
}

func TestPostcardCreateRequiresImage(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	in := validPostcardInput(t)
	in.Image = nil

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if len(repo.postcards) != 0 {
		t.Error("invalid input reached the repository")
	}
}

func TestPostcardCreateRequiresTextFields(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	in := validPostcardInput(t)
	in.Caption = ""

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestPostcardCreateStoresImageAndAvatar(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	in := validPostcardInput(t)
	in.UserAvatar = testImage(t)

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !fileExists(created.ImageURL) {
		t.Error("image file is missing")
	}
	if created.UserAvatar == nil || !fileExists(*created.UserAvatar) {
		t.Error("avatar file is missing")
	}
	if created.Likes != 0 || created.Comments != 0 {
		t.Errorf("counters = %d/%d, want 0/0", created.Likes, created.Comments)
	}
}

func TestPostcardCreateAvatarFailureCleansUpImage(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	in := validPostcardInput(t)
	in.UserAvatar = &Upload{Content: []byte("x"), Filename: "x.tiff"}

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, apperr.ErrUnsupportedMediaType) {
		t.Fatalf("got %v, want ErrUnsupportedMediaType", err)
	}
	if len(repo.postcards) != 0 {
		t.Error("failed create still wrote a record")
	}
}

func TestPostcardListNewestFirst(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	var ids []int64
	for i := 0; i < 3; i++ {
		created, err := svc.Create(context.Background(), validPostcardInput(t))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, created.ID)
		time.Sleep(time.Millisecond)
	}

	postcards, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(postcards) != 3 {
		t.Fatalf("got %d postcards, want 3", len(postcards))
	}
	for i, p := range postcards {
		if want := ids[len(ids)-1-i]; p.ID != want {
			t.Errorf("position %d has id %d, want %d", i, p.ID, want)
		}
	}
}

func TestPostcardDeleteCascadesToBlobs(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	in := validPostcardInput(t)
	in.UserAvatar = testImage(t)

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fileExists(created.ImageURL) {
		t.Error("image file survived the delete")
	}
	if fileExists(*created.UserAvatar) {
		t.Error("avatar file survived the delete")
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestPostcardLike(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	created, err := svc.Create(context.Background(), validPostcardInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	likes, err := svc.Like(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if likes != 1 {
		t.Errorf("likes = %d, want 1", likes)
	}

	if _, err := svc.Like(context.Background(), 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPostcardLikeConcurrent(t *testing.T) {
	repo := newFakePostcardRepo()
	svc := NewPostcardService(repo, newTestStore(t), NewEventHub())

	created, err := svc.Create(context.Background(), validPostcardInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Like(context.Background(), created.ID); err != nil {
				t.Errorf("Like failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Likes != n {
		t.Errorf("likes = %d, want %d (lost updates)", got.Likes, n)
	}
}
