package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"cybele-backend/internal/models"
	"cybele-backend/internal/services"
)

// FriendHandler handles friend HTTP requests
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// GetFriends handles GET /api/friends
func (h *FriendHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.friendService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list friends")
		respondError(w, err.Error(), statusFromError(err))
		return
	}
	if friends == nil {
		friends = []*models.Friend{}
	}
	respondJSON(w, http.StatusOK, friends)
}

// CreateFriend handles POST /api/friends
func (h *FriendHandler) CreateFriend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		respondError(w, "lat must be a number", http.StatusBadRequest)
		return
	}
	lng, err := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err != nil {
		respondError(w, "lng must be a number", http.StatusBadRequest)
		return
	}

	avatar, err := formUpload(r, "avatar")
	if err != nil {
		respondError(w, "Invalid avatar upload", http.StatusBadRequest)
		return
	}

	friend, err := h.friendService.Create(r.Context(), services.FriendInput{
		Name:    name,
		Status:  formValue(r, "status"),
		Country: formValue(r, "country"),
		City:    formValue(r, "city"),
		Lat:     lat,
		Lng:     lng,
		Avatar:  avatar,
	})
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create friend")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Int64("friend_id", friend.ID).Str("name", friend.Name).Msg("Friend created")
	respondJSON(w, http.StatusOK, friend)
}
