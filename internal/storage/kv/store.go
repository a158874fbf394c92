// Package kv implements the durable key-value store backing the tracker.
//
// The store holds opaque JSON blobs under string keys. Two backends exist:
// SQLite for single-machine use and Postgres for shared deployments. Both
// are plain last-writer-wins stores; no cross-session isolation is provided,
// concurrent sessions observe each other only after an explicit reload.
package kv

import (
	"context"
	"strings"
)

// Store is the durable key-value surface. Get returns common.ErrorNotFound
// when the key is absent. Delete of an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend by DSN scheme: postgres DSNs get the Postgres
// store, anything else is treated as a SQLite path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresStore(ctx, dsn)
	}
	return NewSQLiteStore(ctx, dsn)
}
