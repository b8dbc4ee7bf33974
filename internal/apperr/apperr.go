// Package apperr defines the error values shared across the application.
// Callers classify failures with errors.Is; the HTTP layer maps each value
// to a status code.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a referenced record id does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMediaType is returned when an upload has an extension
	// outside the allow-list
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrPayloadTooLarge is returned when an upload exceeds the size ceiling
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrValidation is returned when a required field is missing or malformed
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when a filesystem or object-store write fails
	ErrStorage = errors.New("storage failure")
)
