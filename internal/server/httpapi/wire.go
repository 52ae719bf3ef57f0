package httpapi

import (
	"time"

	"github.com/daybook-app/daybook/internal/server/models"
	"github.com/daybook-app/daybook/internal/server/services"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

type entryPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// entryResponse is the wire form of a journal entry. Timestamp is epoch
// millis at the start of the entry's day; updated_at is omitted until the
// entry is first edited.
type entryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	UserID    string `json:"user_id"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type analyzeRequest struct {
	Entries []entryPayload `json:"entries"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

type searchRequest struct {
	Query   string         `json:"query" binding:"required"`
	Entries []entryPayload `json:"entries"`
}

type searchResponse struct {
	ExactMatches    []entryPayload `json:"exact_matches"`
	SemanticMatches []entryPayload `json:"semantic_matches"`
}

func toTokenPairResponse(p *services.TokenPair) tokenPairResponse {
	return tokenPairResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, UserID: p.UserID}
}

func toEntryResponse(e *models.Entry) entryResponse {
	resp := entryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Timestamp: e.Timestamp,
		Date:      e.EntryDate,
		UserID:    e.UserID,
	}
	if e.UpdatedAt != nil {
		resp.UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toEntryTexts(payloads []entryPayload) []services.EntryText {
	texts := make([]services.EntryText, 0, len(payloads))
	for _, p := range payloads {
		texts = append(texts, services.EntryText{Title: p.Title, Content: p.Content})
	}
	return texts
}

func toEntryPayloads(texts []services.EntryText) []entryPayload {
	payloads := make([]entryPayload, 0, len(texts))
	for _, t := range texts {
		payloads = append(payloads, entryPayload{Title: t.Title, Content: t.Content})
	}
	return payloads
}
