package dbctx

import "errors"

var (
	// ErrNotRegistered is returned when a name has no factory in the registry.
	ErrNotRegistered = errors.New("dbctx: handle not registered")

	// ErrAlreadyRegistered is returned when registering a name twice.
	ErrAlreadyRegistered = errors.New("dbctx: handle already registered")

	// ErrFactoryFailed wraps an error returned by a handle factory.
	ErrFactoryFailed = errors.New("dbctx: handle factory failed")
)
