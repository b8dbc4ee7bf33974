// Package blobstore validates, persists and re-encodes uploaded image files.
// References returned by a Store are opaque path-like strings that records
// save and later hand back to Delete.
package blobstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cybele-backend/internal/apperr"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 5 << 20

// FolderImages and FolderAvatars are the logical folders records store
// their blobs under.
const (
	FolderImages  = "images"
	FolderAvatars = "avatars"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store persists uploaded files and deletes them on request.
type Store interface {
	// Save validates content against the extension allow-list and size
	// ceiling, writes it under folder with a generated name, and returns a
	// servable reference. jpg/jpeg/png inputs are re-encoded best-effort.
	Save(ctx context.Context, content []byte, originalFilename, folder string) (string, error)

	// Delete removes the file behind a reference. It reports false for a
	// missing file or an underlying failure and never returns an error.
	Delete(ctx context.Context, ref string) bool
}

// validateUpload checks the declared filename and the payload size, returning
// the lowercased extension.
func validateUpload(content []byte, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: file type %q is not allowed", apperr.ErrUnsupportedMediaType, ext)
	}
	if len(content) > MaxFileSize {
		return "", fmt.Errorf("%w: maximum size is 5MB", apperr.ErrPayloadTooLarge)
	}
	return ext, nil
}

// newObjectName generates a collision-free stored name. Re-encodable inputs
// are stored as .jpg since they end up JPEG-compressed.
func newObjectName(ext string) string {
	if reencodable(ext) {
		ext = ".jpg"
	}
	return uuid.New().String() + ext
}

func contentTypeByExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
