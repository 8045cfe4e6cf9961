package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/plans"
)

// MemoryRepositoryManager hands out process-local repositories. The db
// argument is ignored; every call returns the same instance so state is
// shared across callers.
type MemoryRepositoryManager struct {
	files       *files.MemoryRepository
	plans       *plans.MemoryRepository
	credentials *credentials.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		files:       files.NewMemoryRepository(),
		plans:       plans.NewMemoryRepository(),
		credentials: credentials.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Files(dbx.DBTX) files.Repository { return m.files }

func (m *MemoryRepositoryManager) Plans(dbx.DBTX) plans.Repository { return m.plans }

func (m *MemoryRepositoryManager) Credentials(dbx.DBTX) credentials.Repository {
	return m.credentials
}

// PlanStore exposes the writable plan store for seeding.
func (m *MemoryRepositoryManager) PlanStore() *plans.MemoryRepository { return m.plans }
