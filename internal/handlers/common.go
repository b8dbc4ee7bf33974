package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cybele-backend/internal/apperr"
	"cybele-backend/internal/blobstore"
	"cybele-backend/internal/services"
)

// multipart form parse limit; file size enforcement lives in the blob store
const maxMultipartMemory = 32 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// statusFromError maps typed failures to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrUnsupportedMediaType):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// formValue returns the first value for a multipart form field, or nil when
// the field is absent. Presence matters for partial updates.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// formUpload reads an optional uploaded file from a multipart form. It
// returns (nil, nil) when the field is absent. Reads are capped just past
// the size ceiling so oversize uploads still fail with the right error
// without buffering arbitrary amounts.
func formUpload(r *http.Request, key string) (*services.Upload, error) {
	file, header, err := r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, blobstore.MaxFileSize+1))
	if err != nil {
		return nil, err
	}

	return &services.Upload{
		Content:  content,
		Filename: header.Filename,
	}, nil
}
