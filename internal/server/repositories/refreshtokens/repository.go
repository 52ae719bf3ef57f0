// Package refreshtokens persists opaque refresh tokens with their expiry.
package refreshtokens

import (
	"context"
	"time"

	"github.com/daybook-app/daybook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error

	// Get returns the stored token row or common.ErrorNotFound.
	Get(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
