package adapter

import "errors"

// Sentinel errors mapped from the object storage HTTP status codes by
// mapHTTPError. Callers match them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("object storage unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrStorageDisabled is returned by the disabled storage for every upload.
	ErrStorageDisabled = errors.New("object storage is not configured")
	// ErrEmptyPublicID is returned when an upload or destroy has no target.
	ErrEmptyPublicID = errors.New("public id is required")
	// ErrUnexpectedResult is returned when the storage answers 2xx with an
	// unusable body.
	ErrUnexpectedResult = errors.New("unexpected object storage response")
)
