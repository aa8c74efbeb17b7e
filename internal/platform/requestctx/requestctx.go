// Package requestctx carries per-request identity through context.
package requestctx

import "context"

type requestIDContextKey struct{}

type viewerRoleContextKey struct{}

// WithRequestID stores a correlation id in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the correlation id stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// WithViewerRole stores the role a caller acts as.
func WithViewerRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerRoleContextKey{}, role)
}

// ViewerRoleFromContext returns the role stored in context, or "" when the
// caller did not name one.
func ViewerRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(viewerRoleContextKey{}).(string)
	return value
}
