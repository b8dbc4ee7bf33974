package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"cybele-backend/internal/apperr"
)

// Disk stores blobs in a content directory tree and returns root-relative
// references ("/<root>/<folder>/<name>") that a static file mount can serve.
type Disk struct {
	root string
}

// NewDisk creates a disk store rooted at the given content directory. The
// root is expected to be relative to the working directory, mirroring how
// references are resolved back to paths on Delete.
func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

// Save implements Store.
func (d *Disk) Save(ctx context.Context, content []byte, originalFilename, folder string) (string, error) {
	ext, err := validateUpload(content, originalFilename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(d.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", apperr.ErrStorage, dir, err)
	}

	path := filepath.Join(dir, newObjectName(ext))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		// Drop whatever was partially written so no orphan remains.
		os.Remove(path)
		return "", fmt.Errorf("%w: failed to write %s: %v", apperr.ErrStorage, path, err)
	}

	if reencodable(ext) {
		if err := reencodeFile(path); err != nil {
			// Non-fatal: the original upload stays on disk.
			log.Warn().Err(err).Str("path", path).Msg("Image re-encode failed, keeping original")
		}
	}

	return "/" + filepath.ToSlash(path), nil
}

// Delete implements Store.
func (d *Disk) Delete(ctx context.Context, ref string) bool {
	path := filepath.FromSlash(strings.TrimPrefix(ref, "/"))
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to delete blob")
		return false
	}
	return true
}
