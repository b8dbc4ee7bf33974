package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cybele-backend/internal/models"
	"cybele-backend/internal/services"
)

// PointHandler handles map point HTTP requests
type PointHandler struct {
	pointService *services.PointService
}

// NewPointHandler creates a new point handler
func NewPointHandler(pointService *services.PointService) *PointHandler {
	return &PointHandler{
		pointService: pointService,
	}
}

// GetPoints handles GET /api/custom-points
func (h *PointHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.pointService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list points")
		respondError(w, err.Error(), statusFromError(err))
		return
	}
	if points == nil {
		points = []*models.MapPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// CreatePoint handles POST /api/custom-points
func (h *PointHandler) CreatePoint(w http.ResponseWriter, r *http.Request) {
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

	image, err := formUpload(r, "image")
	if err != nil {
		respondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	point, err := h.pointService.Create(r.Context(), services.PointInput{
		Name:        name,
		Description: formValue(r, "description"),
		Lat:         lat,
		Lng:         lng,
		Image:       image,
	})
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create point")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Int64("point_id", point.ID).Str("name", point.Name).Msg("Point created")
	respondJSON(w, http.StatusOK, point)
}

// UpdatePoint handles PUT /api/custom-points/{id}
func (h *PointHandler) UpdatePoint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid point id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	patch := services.PointPatch{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
	}
	if v := formValue(r, "lat"); v != nil {
		lat, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			respondError(w, "lat must be a number", http.StatusBadRequest)
			return
		}
		patch.Lat = &lat
	}
	if v := formValue(r, "lng"); v != nil {
		lng, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			respondError(w, "lng must be a number", http.StatusBadRequest)
			return
		}
		patch.Lng = &lng
	}

	patch.Image, err = formUpload(r, "image")
	if err != nil {
		respondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	point, err := h.pointService.Update(r.Context(), id, patch)
	if err != nil {
		log.Error().Err(err).Int64("point_id", id).Msg("Failed to update point")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, point)
}

// DeletePoint handles DELETE /api/custom-points/{id}
func (h *PointHandler) DeletePoint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid point id", http.StatusBadRequest)
		return
	}

	if err := h.pointService.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("point_id", id).Msg("Failed to delete point")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Int64("point_id", id).Msg("Point deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Custom point deleted successfully"})
}
