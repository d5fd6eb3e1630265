package cart

import (
	"context"
	"errors"
	"testing"

	"scanpos/internal/cart/memory"
	"scanpos/internal/domain"
)

func newTestCart() *Accumulator {
	return New(memory.New())
}

func TestAddRemoveTotalScenario(t *testing.T) {
	ctx := context.Background()
	acc := newTestCart()

	if err := acc.Add(ctx, domain.CartLine{Barcode: "A", Name: "Soap", Price: 10}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := acc.Add(ctx, domain.CartLine{Barcode: "B", Name: "Oil", Price: 50}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if total := acc.Total(ctx); total != 60 {
		t.Fatalf("expected total 60, got %v", total)
	}

	removed, err := acc.Remove(ctx, "A")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed line, got %d", removed)
	}

	if total := acc.Total(ctx); total != 50 {
		t.Fatalf("expected total 50 after remove, got %v", total)
	}
	lines := acc.Lines(ctx)
	if len(lines) != 1 || lines[0].Barcode != "B" || lines[0].Name != "Oil" || lines[0].Price != 50 {
		t.Fatalf("unexpected remaining lines: %+v", lines)
	}
}

func TestDuplicateBarcodesAppendAndRemoveAll(t *testing.T) {
	ctx := context.Background()
	acc := newTestCart()

	for i := 0; i < 3; i++ {
		if err := acc.Add(ctx, domain.CartLine{Barcode: "A", Name: "Soap", Price: 10}); err != nil {
			t.Fatalf("add #%d failed: %v", i, err)
		}
	}
	if err := acc.Add(ctx, domain.CartLine{Barcode: "B", Name: "Oil", Price: 50}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if got := len(acc.Lines(ctx)); got != 4 {
		t.Fatalf("expected 4 lines with duplicates, got %d", got)
	}

	removed, err := acc.Remove(ctx, "A")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected all 3 duplicates removed, got %d", removed)
	}
	if got := len(acc.Lines(ctx)); got != 1 {
		t.Fatalf("expected 1 line left, got %d", got)
	}
}

func TestRemoveUnknownBarcodeIsNoop(t *testing.T) {
	ctx := context.Background()
	acc := newTestCart()

	if err := acc.Add(ctx, domain.CartLine{Barcode: "A", Name: "Soap", Price: 10}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	removed, err := acc.Remove(ctx, "ZZZ")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
	if got := len(acc.Lines(ctx)); got != 1 {
		t.Fatalf("expected cart untouched, got %d lines", got)
	}
}

func TestTotalIsAlwaysFresh(t *testing.T) {
	ctx := context.Background()
	acc := newTestCart()

	prices := []float64{1.5, 2.25, 10, 10}
	want := 0.0
	for i, price := range prices {
		if err := acc.Add(ctx, domain.CartLine{Barcode: "X", Name: "Item", Price: price}); err != nil {
			t.Fatalf("add #%d failed: %v", i, err)
		}
		want += price
		if got := acc.Total(ctx); got != want {
			t.Fatalf("after add #%d expected total %v, got %v", i, want, got)
		}
	}

	if _, err := acc.Remove(ctx, "X"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if got := acc.Total(ctx); got != 0 {
		t.Fatalf("expected total 0 after removing everything, got %v", got)
	}
}

type brokenStorage struct{}

func (brokenStorage) Load(context.Context) ([]domain.CartLine, error) {
	return nil, errors.New("disk gone")
}

func (brokenStorage) Save(context.Context, []domain.CartLine) error {
	return errors.New("disk gone")
}

func (brokenStorage) Clear(context.Context) error {
	return errors.New("disk gone")
}

func TestBrokenStorageDegradesToEmptyCart(t *testing.T) {
	ctx := context.Background()
	acc := New(brokenStorage{})

	if lines := acc.Lines(ctx); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
	if total := acc.Total(ctx); total != 0 {
		t.Fatalf("expected total 0, got %v", total)
	}
	if err := acc.Add(ctx, domain.CartLine{Barcode: "A", Price: 1}); err == nil {
		t.Fatalf("expected add to report the write failure")
	}
}

func TestClearEmptiesCart(t *testing.T) {
	ctx := context.Background()
	acc := newTestCart()

	if err := acc.Add(ctx, domain.CartLine{Barcode: "A", Name: "Soap", Price: 10}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := acc.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := len(acc.Lines(ctx)); got != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", got)
	}
}
