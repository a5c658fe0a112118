// Package kvstore provides the durable key/value substrate every stateful
// component persists through. Each component owns its keys and is solely
// responsible for serializing its own data; the store only moves raw
// strings.
package kvstore

import "context"

// Store is the persistence contract. Get reports absence through ok rather
// than an error; errors are reserved for environment-level failures (I/O,
// disk), which callers are expected to degrade on, not crash.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
