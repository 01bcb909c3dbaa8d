package store

import (
	"context"
	"testing"
	"time"
)

func TestMemorySaveGetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, NSConfirm, "a@b.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
	if err := m.Save(ctx, NSConfirm, "a@b.com", "tok-1", time.Minute); err != nil {
		t.Fatalf("save error: %v", err)
	}
	v, err := m.Get(ctx, NSConfirm, "a@b.com")
	if err != nil || v != "tok-1" {
		t.Fatalf("got (%q, %v), want (tok-1, nil)", v, err)
	}
	if err := m.Remove(ctx, NSConfirm, "a@b.com"); err != nil {
		t.Fatalf("remove error: %v", err)
	}
	if _, err := m.Get(ctx, NSConfirm, "a@b.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestMemoryNamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, NSConfirm, "a@b.com", "tok", time.Minute); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if _, err := m.Get(ctx, NSReset, "a@b.com"); err != ErrNotFound {
		t.Fatalf("reset namespace must not see confirm entries, got %v", err)
	}
}

func TestMemoryOverwriteResetsSlot(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, NSPending, "a@b.com", "first", time.Minute); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := m.Save(ctx, NSPending, "a@b.com", "second", time.Minute); err != nil {
		t.Fatalf("save error: %v", err)
	}
	v, err := m.Get(ctx, NSPending, "a@b.com")
	if err != nil || v != "second" {
		t.Fatalf("last writer must win, got (%q, %v)", v, err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, NSReset, "a@b.com", "123456", 10*time.Millisecond); err != nil {
		t.Fatalf("save error: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, err := m.Get(ctx, NSReset, "a@b.com"); err != ErrNotFound {
		t.Fatalf("expected expired entry to be absent, got %v", err)
	}
}
