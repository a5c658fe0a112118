package kvstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dailyfuel.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(ctx, "dailyfuel_limit", "50"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := s.Get(ctx, "dailyfuel_limit"); err != nil || !ok || v != "50" {
		t.Fatalf("Get(limit) = %q ok=%v err=%v, want 50", v, ok, err)
	}

	// Upsert replaces the value
	if err := s.Set(ctx, "dailyfuel_limit", "75.5"); err != nil {
		t.Fatalf("Set upsert: %v", err)
	}
	if v, _, _ := s.Get(ctx, "dailyfuel_limit"); v != "75.5" {
		t.Fatalf("Get(limit) after upsert = %q, want 75.5", v)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dailyfuel.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Set(ctx, "dailyfuel_expenses", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get(ctx, "dailyfuel_expenses"); !ok || v != `[]` {
		t.Errorf("reopened Get(expenses) = %q ok=%v, want []", v, ok)
	}
}
