// Package entries provides the journal-entry repository: rows scoped by
// owner, queried by exact day-string equality.
package entries

import (
	"context"

	"github.com/daybook-app/daybook/internal/server/models"
)

type Repository interface {
	// ListForDate returns all entries of userID with the given entry date,
	// ordered by timestamp.
	ListForDate(ctx context.Context, userID, date string) ([]*models.Entry, error)

	// Create inserts a fully populated entry row.
	Create(ctx context.Context, entry *models.Entry) error

	// Update replaces title/content and stamps updated_at for an entry the
	// user owns. Returns common.ErrorNotFound when no owned row matches.
	Update(ctx context.Context, userID, id, title, content string) error

	// Delete removes an entry the user owns, with the same not-found rule.
	Delete(ctx context.Context, userID, id string) error
}
