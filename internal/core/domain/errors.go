package domain

import "errors"

// Sentinel errors shared across the service and transport layers. Callers
// wrap them with fmt.Errorf("...: %w") and match with errors.Is.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and include a letter, a digit and one of @$!%*#?&")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrListNotFound = errors.New("list not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidIDs   = errors.New("body must be a movie id or an array of movie ids")

	ErrUnknownResource = errors.New("unknown catalog resource")
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidID       = errors.New("invalid id")
	ErrUpstream        = errors.New("upstream request failed")

	ErrInvalidReview = errors.New("invalid review")
)
