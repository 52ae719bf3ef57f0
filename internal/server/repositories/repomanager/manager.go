// Package repomanager wires the concrete repositories to a shared database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/daybook-app/daybook/internal/dbx"
	"github.com/daybook-app/daybook/internal/server/repositories/entries"
	"github.com/daybook-app/daybook/internal/server/repositories/refreshtokens"
	"github.com/daybook-app/daybook/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// a group of repository calls either on the shared connection or inside a
// transaction via dbx.WithTx.
type RepositoryManager interface {
	Conn() *sql.DB
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Entries(db dbx.DBTX) entries.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
