package domain

import "errors"

// Stable failure categories. Handlers and the central HTTP error handler
// branch on these with errors.Is; messages wrapped around them are
// diagnostic only.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidID          = errors.New("invalid id")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrReportNotFound     = errors.New("report not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
