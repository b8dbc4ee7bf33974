package blobstore

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth  = 800
	maxImageHeight = 600
	jpegQuality    = 85
)

// reencodable reports whether files with the given extension get the JPEG
// re-encode treatment. gif and webp are stored verbatim.
func reencodable(ext string) bool {
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

// reencode downsizes img to fit within the bounding box, flattening any
// alpha or palette color model onto a solid white background so the result
// survives JPEG encoding.
func reencode(img image.Image) image.Image {
	img = imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
	flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
}

// reencodeFile re-encodes the stored file in place as a compressed JPEG.
func reencodeFile(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if err := imaging.Save(reencode(img), path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// reencodeBytes is the in-memory variant used by object-store backends.
func reencodeBytes(content []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, reencode(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
