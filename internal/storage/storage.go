// Package storage persists analysis reports as JSON files under a base
// directory. Persistence is the caller's concern, not the engine's; the
// CLI and server use this store, library callers may ignore it.
package storage

import "context"

type Store interface {
	Save(ctx context.Context, path string, data []byte) error
	Load(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, pattern string) ([]string, error)
}
