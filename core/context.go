package core

import "context"

// ctxKey is the private type for context keys owned by this package.
type ctxKey int

// suppressHeaderKey marks a context whose analysis run must not print
// headers, e.g. MCP mode where stdout carries the protocol.
const suppressHeaderKey ctxKey = iota

// WithSuppressHeader returns a context that silences run headers.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// headerSuppressed reports whether run headers are silenced.
func headerSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(suppressHeaderKey).(bool)
	return v
}
