package reqid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %d from context, got %d ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestChildContextsKeepDistinctIDs(t *testing.T) {
	base, a := NewContext(context.Background())
	nested, b := NewContext(base)
	if got, _ := FromContext(nested); got != b {
		t.Fatalf("nested context should carry the newer id")
	}
	if got, _ := FromContext(base); got != a {
		t.Fatalf("outer context should keep its own id")
	}
}
