// Package models contains server-side persistence models.
package models

// User is a registered account. PasswordHash is an argon2id PHC string.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
}
