package models

import "time"

// RefreshToken is an opaque long-lived token bound to a user. Tokens are
// rotated on every refresh and revoked on logout.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
