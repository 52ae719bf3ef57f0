// Package httpapi exposes the Daybook services over a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/server/models"
	"github.com/daybook-app/daybook/internal/server/services"
)

// Accounts is the slice of the user service the API needs.
type Accounts interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Journal is the slice of the entry service the API needs.
type Journal interface {
	List(ctx context.Context, userID, date string) ([]*models.Entry, error)
	Create(ctx context.Context, userID, title, content string) error
	Update(ctx context.Context, userID, id, title, content string) error
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address   string
	logger    logging.Logger
	accounts  Accounts
	journal   Journal
	analyzer  services.Analyzer
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, accounts Accounts, journal Journal, analyzer services.Analyzer, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		accounts:  accounts,
		journal:   journal,
		analyzer:  analyzer,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/ping", s.ping)

		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/refresh", s.refresh)
		api.POST("/auth/logout", s.logout)

		authed := api.Group("/")
		authed.Use(s.authRequired())
		{
			authed.GET("/entries", s.listEntries)
			authed.POST("/entries", s.createEntry)
			authed.PUT("/entries/:id", s.updateEntry)
			authed.DELETE("/entries/:id", s.deleteEntry)
			authed.POST("/analyze", s.analyze)
			authed.POST("/search", s.search)
		}
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
