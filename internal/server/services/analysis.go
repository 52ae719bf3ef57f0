package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/server/config"
)

// EntryText is the {title, content} pair the AI endpoints consume. Entries
// are stripped of ids and dates before leaving the server.
type EntryText struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Analyzer produces a reflective summary of a day's entries and judges
// search relevance. One attempt per call; failures are terminal.
type Analyzer interface {
	Summarize(ctx context.Context, entries []EntryText) (string, error)
	Search(ctx context.Context, query string, entries []EntryText) (exact, semantic []EntryText, err error)
}

// AIService implements Analyzer over an OpenAI-compatible chat-completions
// endpoint. With no API key configured it degrades to a canned summary and
// substring-only search, which keeps development setups working.
type AIService struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     logging.Logger
}

func NewAIService(cfg *config.Config, logger logging.Logger) *AIService {
	return &AIService{
		endpoint:   cfg.AIEndpoint,
		apiKey:     cfg.AIKey,
		model:      cfg.AIModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger.With("module", "ai_service"),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize asks the model for a short reflective summary of the day.
func (s *AIService) Summarize(ctx context.Context, entries []EntryText) (string, error) {
	if s.apiKey == "" {
		return s.cannedSummary(entries), nil
	}

	system := "You are a thoughtful journaling assistant. Given a person's journal " +
		"entries for a single day, write a short reflective summary: themes, mood, " +
		"and one gentle observation. Address the writer directly."

	return s.chatComplete(ctx, system, formatEntries(entries))
}

// Search combines local case-insensitive substring matching with an
// LLM relevance judgment. Semantic matches exclude exact ones.
func (s *AIService) Search(ctx context.Context, query string, entries []EntryText) ([]EntryText, []EntryText, error) {
	exact := make([]EntryText, 0, len(entries))
	exactSet := make(map[string]struct{})
	q := strings.ToLower(query)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			exact = append(exact, e)
			exactSet[e.Title] = struct{}{}
		}
	}

	if s.apiKey == "" {
		return exact, nil, nil
	}

	system := "You are a helpful assistant that analyzes journal entries. Given a " +
		"search query and journal entries, identify entries that semantically match " +
		"the query. Consider themes, emotions, and underlying meanings. Return only " +
		"the most relevant matches."
	user := fmt.Sprintf("Search Query: %q\n\n%s", query, formatEntries(entries))

	judgment, err := s.chatComplete(ctx, system, user)
	if err != nil {
		return nil, nil, err
	}

	var semantic []EntryText
	lower := strings.ToLower(judgment)
	for _, e := range entries {
		if _, isExact := exactSet[e.Title]; isExact {
			continue
		}
		if strings.Contains(lower, strings.ToLower(e.Title)) {
			semantic = append(semantic, e)
		}
	}
	return exact, semantic, nil
}

func (s *AIService) chatComplete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error(ctx, "ai endpoint returned error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("ai endpoint status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding ai response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("ai response contained no choices")
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

func (s *AIService) cannedSummary(entries []EntryText) string {
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	return fmt.Sprintf("You wrote %d entries today: %s.", len(entries), strings.Join(titles, ", "))
}

func formatEntries(entries []EntryText) string {
	var b strings.Builder
	b.WriteString("Journal Entries:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "Title: %s\nContent: %s\n---\n", e.Title, e.Content)
	}
	return b.String()
}
