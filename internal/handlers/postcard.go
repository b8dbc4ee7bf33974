package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cybele-backend/internal/models"
	"cybele-backend/internal/services"
)

// PostcardHandler handles postcard HTTP requests
type PostcardHandler struct {
	postcardService *services.PostcardService
}

// NewPostcardHandler creates a new postcard handler
func NewPostcardHandler(postcardService *services.PostcardService) *PostcardHandler {
	return &PostcardHandler{
		postcardService: postcardService,
	}
}

// GetPostcards handles GET /api/postcards
func (h *PostcardHandler) GetPostcards(w http.ResponseWriter, r *http.Request) {
	postcards, err := h.postcardService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list postcards")
		respondError(w, err.Error(), statusFromError(err))
		return
	}
	if postcards == nil {
		postcards = []*models.Postcard{}
	}
	respondJSON(w, http.StatusOK, postcards)
}

// CreatePostcard handles POST /api/postcards
func (h *PostcardHandler) CreatePostcard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
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

	image, err := formUpload(r, "image")
	if err != nil {
		respondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}
	avatar, err := formUpload(r, "user_avatar")
	if err != nil {
		respondError(w, "Invalid avatar upload", http.StatusBadRequest)
		return
	}

	postcard, err := h.postcardService.Create(r.Context(), services.PostcardInput{
		UserName:        r.FormValue("user_name"),
		Location:        r.FormValue("location"),
		Country:         r.FormValue("country"),
		Caption:         r.FormValue("caption"),
		PersonalMessage: r.FormValue("personal_message"),
		DateStamp:       r.FormValue("date_stamp"),
		Lat:             lat,
		Lng:             lng,
		Image:           image,
		UserAvatar:      avatar,
	})
	if err != nil {
		log.Error().Err(err).Str("user_name", r.FormValue("user_name")).Msg("Failed to create postcard")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Int64("postcard_id", postcard.ID).Str("user_name", postcard.UserName).Msg("Postcard created")
	respondJSON(w, http.StatusOK, postcard)
}

// DeletePostcard handles DELETE /api/postcards/{id}
func (h *PostcardHandler) DeletePostcard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid postcard id", http.StatusBadRequest)
		return
	}

	if err := h.postcardService.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("postcard_id", id).Msg("Failed to delete postcard")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Int64("postcard_id", id).Msg("Postcard deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Postcard deleted successfully"})
}

// LikePostcard handles PUT /api/postcards/{id}/like
func (h *PostcardHandler) LikePostcard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid postcard id", http.StatusBadRequest)
		return
	}

	likes, err := h.postcardService.Like(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("postcard_id", id).Msg("Failed to like postcard")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"likes": likes})
}
