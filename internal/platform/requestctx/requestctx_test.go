package requestctx

import (
	"context"
	"testing"
)

func TestRequestIDFromContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "board-1")
	if got := RequestIDFromContext(ctx); got != "board-1" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "board-1")
	}
}

func TestViewerRoleFromContextRoundTrip(t *testing.T) {
	ctx := WithViewerRole(context.Background(), "IT")
	if got := ViewerRoleFromContext(ctx); got != "IT" {
		t.Fatalf("ViewerRoleFromContext = %q, want %q", got, "IT")
	}
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected no request id, got %q", got)
	}
}

func TestFromContextEmpty(t *testing.T) {
	if got := ViewerRoleFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty role, got %q", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty request id for nil context, got %q", got)
	}
	if got := ViewerRoleFromContext(nil); got != "" {
		t.Fatalf("expected empty role for nil context, got %q", got)
	}
}

func TestWithNilContext(t *testing.T) {
	ctx := WithViewerRole(nil, "ADMIN")
	ctx = WithRequestID(ctx, "board-9")
	if got := ViewerRoleFromContext(ctx); got != "ADMIN" {
		t.Fatalf("ViewerRoleFromContext = %q, want ADMIN", got)
	}
	if got := RequestIDFromContext(ctx); got != "board-9" {
		t.Fatalf("RequestIDFromContext = %q, want board-9", got)
	}
}
