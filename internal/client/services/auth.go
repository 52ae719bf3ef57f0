// Package services contains application services for the Daybook client:
// session management and the adapters that bind the HTTP API client to the
// journal core.
package services

import (
	"context"
	"sync"

	"github.com/daybook-app/daybook/internal/client/api"
)

// AuthService owns the client-side session: it signs users in and out and
// notifies subscribers of session changes. It satisfies journal.Session.
type AuthService struct {
	client api.Client

	mu     sync.Mutex
	userID string
	subs   map[int]func(userID string)
	nextID int
}

func NewAuthService(client api.Client) *AuthService {
	return &AuthService{client: client, subs: make(map[int]func(string))}
}

func (a *AuthService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

func (a *AuthService) Login(ctx context.Context, username string, password []byte) error {
	userID, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.setUserID(userID)
	return nil
}

// Logout revokes the session server-side and clears it locally. The local
// session is cleared even if the server call fails.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.setUserID("")
	return err
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// UserID returns the signed-in user's id, or "" when nobody is signed in.
func (a *AuthService) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

// OnChange registers a callback fired on sign-in/sign-out transitions and
// returns an unsubscribe function.
func (a *AuthService) OnChange(fn func(userID string)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

func (a *AuthService) setUserID(userID string) {
	a.mu.Lock()
	if a.userID == userID {
		a.mu.Unlock()
		return
	}
	a.userID = userID
	subs := make([]func(string), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(userID)
	}
}
