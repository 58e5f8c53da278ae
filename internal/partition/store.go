// Package partition manages per-tenant data partitions keyed by partition key.
// A partition is an opaque container of JSON documents; it exists iff some
// organization record references its key.
package partition

import (
	"context"
	"errors"
)

var (
	// ErrExists is returned by Create when a partition already occupies the key.
	ErrExists = errors.New("partition already exists")
	// ErrNotFound is returned by item operations when the partition is absent.
	ErrNotFound = errors.New("partition not found")
)

// Store defines allocation and migration of tenant data partitions.
// Drop tolerates an absent partition; Create and Copy do not.
type Store interface {
	// Create allocates an empty partition at key. Returns ErrExists if the key is taken.
	Create(ctx context.Context, key string) error
	// Exists reports whether a partition is allocated at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Copy copies every item from the partition at fromKey into the partition at
	// toKey. The source is never modified; on failure the destination may hold a
	// partial copy and should be dropped by the caller.
	Copy(ctx context.Context, fromKey, toKey string) error
	// Drop deallocates the partition at key. Dropping an absent partition is not an error.
	Drop(ctx context.Context, key string) error
	// List returns the keys of all allocated partitions.
	List(ctx context.Context) ([]string, error)
	// Put stores doc (a JSON document) under id in the partition at key.
	Put(ctx context.Context, key, id string, doc []byte) error
	// Items returns all documents in the partition at key, by id.
	Items(ctx context.Context, key string) (map[string][]byte, error)
}
