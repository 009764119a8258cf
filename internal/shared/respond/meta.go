package respond

import (
	"context"
	"sync"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const metaKey contextKey = "responseMeta"

// Meta accumulates response metadata for a single request. It lives in the
// request context only, so concurrent requests never observe each other's
// entries.
type Meta struct {
	mu     sync.Mutex
	values map[string]any
}

// WithMeta returns a context carrying a fresh, empty meta registry.
func WithMeta(ctx context.Context) context.Context {
	return context.WithValue(ctx, metaKey, &Meta{values: make(map[string]any)})
}

// AddMeta records a key/value pair for the current request's envelope.
// It is a no-op when the context carries no registry (e.g. bare tests).
func AddMeta(ctx context.Context, key string, value any) {
	meta, _ := ctx.Value(metaKey).(*Meta)
	if meta == nil {
		return
	}
	meta.mu.Lock()
	meta.values[key] = value
	meta.mu.Unlock()
}

// metaFrom snapshots the accumulated metadata. Always returns a non-nil map
// so the envelope serializes meta as an object.
func metaFrom(ctx context.Context) map[string]any {
	out := make(map[string]any)
	meta, _ := ctx.Value(metaKey).(*Meta)
	if meta == nil {
		return out
	}
	meta.mu.Lock()
	for k, v := range meta.values {
		out[k] = v
	}
	meta.mu.Unlock()
	return out
}
