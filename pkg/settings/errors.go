package settings

import "errors"

var (
	// ErrMissingValue is returned when a required setting is absent or empty.
	ErrMissingValue = errors.New("settings: missing value")

	// ErrInvalidURI is returned when a base URI is not an absolute URL.
	ErrInvalidURI = errors.New("settings: invalid URI")

	// ErrParse wraps decoding failures of the underlying source.
	ErrParse = errors.New("settings: failed to parse source")
)
