package types

import "errors"

var (
	// ErrNotFound is returned when a document or recipient is not found
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the resource conflicts (e.g. update of old revision)
	ErrConflict = errors.New("conflict")

	// ErrBadRequest is returned on malformed caller input
	ErrBadRequest = errors.New("bad request")

	// ErrNotAuthorized is returned when the caller lacks permission
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidFormat is returned when a value has an unexpected format
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInternal (for unhandled exceptions)
	ErrInternal = errors.New("internal error")
)
