package services

import (
	"context"
	"time"

	"github.com/daybook-app/daybook/internal/client/api"
	"github.com/daybook-app/daybook/internal/journal"
)

// EntryStore adapts the HTTP API client to journal.Store. The server scopes
// every call to the bearer token's user, so the ownerID arguments are only
// used to fill in the returned entries.
type EntryStore struct {
	client api.Client
}

func NewEntryStore(client api.Client) *EntryStore {
	return &EntryStore{client: client}
}

func (s *EntryStore) ListForDate(ctx context.Context, day, ownerID string) ([]journal.Entry, error) {
	wire, err := s.client.ListEntries(ctx, day)
	if err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, toJournalEntry(w))
	}
	return entries, nil
}

func (s *EntryStore) Create(ctx context.Context, title, content, _ string) error {
	return s.client.CreateEntry(ctx, title, content)
}

func (s *EntryStore) Update(ctx context.Context, id, title, content string) error {
	return s.client.UpdateEntry(ctx, id, title, content)
}

func (s *EntryStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteEntry(ctx, id)
}

func toJournalEntry(w api.Entry) journal.Entry {
	e := journal.Entry{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		OwnerID:   w.UserID,
		Date:      w.Date,
		CreatedAt: w.Timestamp,
	}
	if w.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, w.UpdatedAt); err == nil {
			e.UpdatedAt = &t
		}
	}
	return e
}

// AnalysisService adapts the API client's analyze endpoint to
// journal.Summarizer and exposes the semantic search endpoint.
type AnalysisService struct {
	client api.Client
}

func NewAnalysisService(client api.Client) *AnalysisService {
	return &AnalysisService{client: client}
}

func (s *AnalysisService) Summarize(ctx context.Context, entries []journal.Entry) (string, error) {
	return s.client.Analyze(ctx, toEntryTexts(entries))
}

// SemanticSearch returns exact substring matches and LLM-judged semantic
// matches over the given entries.
func (s *AnalysisService) SemanticSearch(ctx context.Context, query string, entries []journal.Entry) (exact, semantic []api.EntryText, err error) {
	return s.client.Search(ctx, query, toEntryTexts(entries))
}

func toEntryTexts(entries []journal.Entry) []api.EntryText {
	texts := make([]api.EntryText, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, api.EntryText{Title: e.Title, Content: e.Content})
	}
	return texts
}
