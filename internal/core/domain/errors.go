package domain

import "errors"

var (
	// ErrSessionNotFound is returned by session stores when no record exists
	// for the given session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotAuthenticated is returned when a handler is reached without an
	// authenticated session. The route guard should have redirected first.
	ErrNotAuthenticated = errors.New("not authenticated")
)
