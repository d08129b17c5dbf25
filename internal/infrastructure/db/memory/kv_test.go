package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/authshell/authshell/internal/core/domain"
)

func TestKV_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	if _, err := kv.Get(ctx, "user"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := kv.Set(ctx, "user", `{"id":"1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := kv.Get(ctx, "user")
	if err != nil || v != `{"id":"1"}` {
		t.Fatalf("unexpected get: %q %v", v, err)
	}

	if err := kv.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := kv.Remove(ctx, "user"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, err := kv.Get(ctx, "user"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after remove, got %v", err)
	}
}
