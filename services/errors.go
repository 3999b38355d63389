package services

import "errors"

// Sentinel errors handlers translate into HTTP statuses. Ownership
// failures are always ErrNotFound so a caller cannot distinguish another
// user's resource from a nonexistent one.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("completion already recorded for this date")
	ErrUnknownTag = errors.New("unknown tag id")
	ErrDuplicate  = errors.New("already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingRefresh     = errors.New("refresh token missing")
	ErrInvalidRefresh     = errors.New("refresh token invalid")
)
