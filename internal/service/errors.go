package service

import "errors"

// Every failure of the submission pipeline maps to exactly one of these
// kinds, so the caller can report it distinctly and decide whether to retry.
// Reverse-geocoding failure is deliberately absent: it is absorbed into the
// fallback place name and never surfaces.
var (
	// ErrValidation: the description is empty after trimming. Raised before
	// any collaborator is touched.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated: no authenticated session is attached.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrLocation: device geolocation was denied or timed out.
	ErrLocation = errors.New("failed to acquire location")

	// ErrMediaUpload: the user attached media and the upload failed.
	ErrMediaUpload = errors.New("media upload failed")

	// ErrPersistence: the store rejected the create.
	ErrPersistence = errors.New("failed to persist incident")
)
