package sentinel

import "errors"

// Sentinel dependency errors. Collaborators return these (optionally wrapped)
// so the tracking service can classify failures exactly once.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrBadRequest   = errors.New("bad request")
	ErrMalformed    = errors.New("malformed data")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
