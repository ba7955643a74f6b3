package sample

import "errors"

var (
	// ErrNotImplemented is returned by every Manager operation. The API maps it to 501.
	ErrNotImplemented = errors.New("sample: not implemented")

	ErrNotFound = errors.New("sample: not found")
	ErrQuery    = errors.New("sample: query failed")
)
