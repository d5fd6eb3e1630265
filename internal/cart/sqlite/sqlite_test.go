package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"scanpos/internal/domain"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := Open(filepath.Join(t.TempDir(), "cart.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestEmptyDatabaseLoadsNoLines(t *testing.T) {
	storage := openTestStorage(t)

	lines, err := storage.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := openTestStorage(t)

	want := []domain.CartLine{
		{Barcode: "A", Name: "Soap", Price: 10},
		{Barcode: "B", Name: "Oil", Price: 50},
	}
	if err := storage.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	ctx := context.Background()
	storage := openTestStorage(t)

	if err := storage.Save(ctx, []domain.CartLine{{Barcode: "A", Name: "Soap", Price: 10}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := storage.Save(ctx, []domain.CartLine{{Barcode: "B", Name: "Oil", Price: 50}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	lines, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Barcode != "B" {
		t.Fatalf("expected overwritten cart, got %+v", lines)
	}
}

func TestClearRemovesState(t *testing.T) {
	ctx := context.Background()
	storage := openTestStorage(t)

	if err := storage.Save(ctx, []domain.CartLine{{Barcode: "A", Name: "Soap", Price: 10}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := storage.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	lines, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(lines))
	}
}
