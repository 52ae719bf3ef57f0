package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/daybook-app/daybook/internal/common"
)

// HTTPClient implements Client over the server's JSON API. Analysis and
// search calls go through a separate long-timeout client since the AI
// backend is slow.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	slowClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		slowClient: &http.Client{Timeout: 90 * time.Second},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one JSON request. On a 401 carrying the expired-token message it
// refreshes the token pair and retries the original request exactly once.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWith(ctx, c.httpClient, method, path, body, out)
}

func (c *HTTPClient) doWith(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	status, respBody, err := c.send(ctx, hc, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if status == http.StatusUnauthorized && c.refreshToken != "" {
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error == common.TokenExpiredMessage {
			if err := c.refresh(ctx); err != nil {
				return err
			}
			status, respBody, err = c.send(ctx, hc, method, path, body)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnavailable, err)
			}
		}
	}

	if status >= 400 {
		return c.mapError(status, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, hc *http.Client, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func (c *HTTPClient) mapError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusBadRequest:
		if eb.Error != "" {
			return fmt.Errorf("%w: %s", ErrBadRequest, eb.Error)
		}
		return ErrBadRequest
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrUnavailable, eb.Error)
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Username: username, Password: string(password)}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	var pair tokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Username: username, Password: string(password)}, &pair)
	if err != nil {
		return "", err
	}

	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return pair.UserID, nil
}

// refresh rotates the token pair. Any failure invalidates the stored tokens
// so the next call surfaces ErrUnauthorized instead of looping.
func (c *HTTPClient) refresh(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.refreshToken}

	status, respBody, err := c.send(ctx, c.httpClient, http.MethodPost, "/api/auth/refresh", body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if status != http.StatusOK {
		c.accessToken = ""
		c.refreshToken = ""
		return ErrUnauthorized
	}

	var pair tokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}

	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if c.refreshToken == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{"refresh_token": c.refreshToken}, nil)
	c.accessToken = ""
	c.refreshToken = ""
	return err
}

type pingResponse struct {
	Status string `json:"status"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

type listEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

func (c *HTTPClient) ListEntries(ctx context.Context, date string) ([]Entry, error) {
	var resp listEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/entries?date="+date, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

type entryPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *HTTPClient) CreateEntry(ctx context.Context, title, content string) error {
	return c.do(ctx, http.MethodPost, "/api/entries", entryPayload{Title: title, Content: content}, nil)
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id, title, content string) error {
	return c.do(ctx, http.MethodPut, "/api/entries/"+id, entryPayload{Title: title, Content: content}, nil)
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/entries/"+id, nil, nil)
}

type analyzeRequest struct {
	Entries []EntryText `json:"entries"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

func (c *HTTPClient) Analyze(ctx context.Context, entries []EntryText) (string, error) {
	var resp analyzeResponse
	if err := c.doWith(ctx, c.slowClient, http.MethodPost, "/api/analyze", analyzeRequest{Entries: entries}, &resp); err != nil {
		return "", err
	}
	return resp.Analysis, nil
}

type searchRequest struct {
	Query   string      `json:"query"`
	Entries []EntryText `json:"entries"`
}

type searchResponse struct {
	ExactMatches    []EntryText `json:"exact_matches"`
	SemanticMatches []EntryText `json:"semantic_matches"`
}

func (c *HTTPClient) Search(ctx context.Context, query string, entries []EntryText) ([]EntryText, []EntryText, error) {
	var resp searchResponse
	if err := c.doWith(ctx, c.slowClient, http.MethodPost, "/api/search", searchRequest{Query: query, Entries: entries}, &resp); err != nil {
		return nil, nil, err
	}
	return resp.ExactMatches, resp.SemanticMatches, nil
}
