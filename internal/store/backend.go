// Package store persists the registry: the senior roster, the audit log, the
// current session and the SCID counter. Values are opaque byte slices kept
// under fixed keys in one of several key-value backends.
package store

import "context"

// Backend is a byte-oriented key-value store.
//
// Get returns (nil, nil) when the key does not exist. SetMany writes all
// values atomically where the backend supports it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
