package ports

import "context"

// KeyValueStore is the durable string key-value capability the session
// store persists through. Get returns domain.ErrKeyNotFound for absent keys;
// Remove on an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
