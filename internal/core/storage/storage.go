// Package storage persists small keyed records, such as campaign progress, as
// YAML documents.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrInvalidKey = errors.New("invalid record key")
)

// Storage reads and writes whole records by key. Values are encoded as YAML, so
// any yaml.v3-compatible value can be stored.
type Storage interface {
	Read(ctx context.Context, key string, into any) error
	Write(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Statistics counts operations on a store.
type Statistics struct {
	Reads   uint64
	Writes  uint64
	Deletes uint64
	Misses  uint64
}
