package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pickgate/internal/dbx"
	"github.com/dmitrijs2005/pickgate/internal/server/repositories/users"
)

// MemoryRepositoryManager ignores the database handle and always returns the
// same in-process store.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}
