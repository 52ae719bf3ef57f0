// Package services contains the application services of the Daybook server:
// account/token management, journal-entry rules, and the AI analysis proxy.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/dbx"
	"github.com/daybook-app/daybook/internal/server/auth"
	"github.com/daybook-app/daybook/internal/server/config"
	"github.com/daybook-app/daybook/internal/server/models"
	"github.com/daybook-app/daybook/internal/server/repositories/refreshtokens"
	"github.com/daybook-app/daybook/internal/server/repositories/repomanager"
)

// makeRefreshToken is a seam for tests.
var makeRefreshToken = common.MakeRandHexString

// TokenPair is what a successful login or refresh hands the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// UserService implements registration, login and refresh-token rotation.
type UserService struct {
	db                           *sql.DB
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repos:                        repos,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account with an argon2id password hash.
func (s *UserService) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, common.ErrorUnauthorized
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing error: %w", err)
	}

	user, err := s.repos.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorUserAlreadyExists) {
			return nil, common.ErrorUserAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the password and issues an access/refresh token pair.
// Unknown user and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username string, password []byte) (*TokenPair, error) {
	user, err := s.repos.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, s.repos.RefreshTokens(s.db), user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return pair, nil
}

// Refresh rotates a refresh token: the old token is revoked and a fresh pair
// is issued. Revocation and issuance run in one transaction, so a failed
// issuance leaves the old token usable. Expired tokens are revoked and
// rejected.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repos.RefreshTokens(s.db)

	rt, err := repo.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repos.RefreshTokens(tx)
		if err := txRepo.Delete(ctx, refreshToken); err != nil {
			return err
		}
		pair, err = s.issueTokens(ctx, txRepo, rt.UserID)
		return err
	})
	if err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// Logout revokes a refresh token. The short-lived access token is simply
// allowed to expire.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

func (s *UserService) issueTokens(ctx context.Context, repo refreshtokens.Repository, userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := makeRefreshToken(32)
	if err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, UserID: userID}, nil
}
