package utils

import "time"

// SessionData is the middleware-facing view of a stored session.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}
