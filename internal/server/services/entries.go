package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/datex"
	"github.com/daybook-app/daybook/internal/server/models"
	"github.com/daybook-app/daybook/internal/server/repositories/entries"
)

// EntryService enforces the journal-entry rules on top of the repository:
// non-empty trimmed title/content, entry date and timestamp assigned from the
// server wall clock at creation, updated_at stamped only on edits.
type EntryService struct {
	repo entries.Repository
	now  func() time.Time
}

func NewEntryService(repo entries.Repository) *EntryService {
	return &EntryService{repo: repo, now: time.Now}
}

// List returns the caller's entries for an exact day.
func (s *EntryService) List(ctx context.Context, userID, date string) ([]*models.Entry, error) {
	if !datex.IsValidDay(date) {
		return nil, common.ErrorInvalidDate
	}
	list, err := s.repo.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return list, nil
}

// Create files a new entry under today's date, whatever day the client is
// browsing. The created record's id is not reported back; clients re-list.
func (s *EntryService) Create(ctx context.Context, userID, title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return common.ErrorEmptyTitleOrContent
	}

	now := s.now()
	entry := &models.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		EntryDate: datex.FormatDay(now),
		Timestamp: datex.DayStartMillis(now),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("error saving entry: %w", err)
	}
	return nil
}

// Update replaces title/content of an owned entry and stamps updated_at.
func (s *EntryService) Update(ctx context.Context, userID, id, title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return common.ErrorEmptyTitleOrContent
	}
	return s.repo.Update(ctx, userID, id, title, content)
}

// Delete removes an owned entry.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
