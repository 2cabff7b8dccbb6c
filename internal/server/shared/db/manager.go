// Package db opens the credential store selected by configuration and
// applies its schema.
package db

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcourses/internal/server/users"
)

// Storage kinds accepted by Open.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	Close() error
}

// Open builds the manager for kind and runs its migrations.
func Open(ctx context.Context, kind, dsn string) (RepositoryManager, error) {
	switch kind {
	case StoragePostgres:
		return NewPostgresRepositoryManager(ctx, dsn)
	case StorageMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}
