package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/plans"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Files(db dbx.DBTX) files.Repository
	Plans(db dbx.DBTX) plans.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
