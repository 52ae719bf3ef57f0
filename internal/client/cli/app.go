// Package cli implements the interactive Daybook command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daybook-app/daybook/internal/client/api"
	"github.com/daybook-app/daybook/internal/client/config"
	"github.com/daybook-app/daybook/internal/client/services"
	"github.com/daybook-app/daybook/internal/journal"
)

type App struct {
	config   *config.Config
	auth     *services.AuthService
	analysis *services.AnalysisService
	manager  *journal.Manager
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	client := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	auth := services.NewAuthService(client)
	store := services.NewEntryStore(client)
	analysis := services.NewAnalysisService(client)
	manager := journal.NewManager(store, analysis, auth)

	return &App{
		config:   c,
		auth:     auth,
		analysis: analysis,
		manager:  manager,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.manager.Close()

	printlnFn("Daybook CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.auth.UserID() != ""
}

// status renders the prompt fragment: the viewed day when signed in, or a
// hint to log in.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return "not logged in"
	}
	day := a.manager.ActiveDate()
	if day == a.manager.Today() {
		return fmt.Sprintf("%s (today)", day)
	}
	return day
}
