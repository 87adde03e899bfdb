package errors

import "errors"

// Cross-service failure classes. Domain packages keep their own sentinels;
// these describe what happened when talking to a sibling service or a store.
var (
	// ErrNotFound the remote resource does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrUnavailable the remote service could not be reached or kept failing
	ErrUnavailable = errors.New("service unavailable")
	// ErrUnauthorized the remote service rejected the forwarded credentials
	ErrUnauthorized = errors.New("remote service rejected credentials")
	// ErrConflict the remote service reported a conflicting state
	ErrConflict = errors.New("conflict")
	// ErrBadRequest the remote service rejected the request payload
	ErrBadRequest = errors.New("bad request")
)
