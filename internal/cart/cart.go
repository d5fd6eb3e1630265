// Package cart accumulates scanned lines between sales. The device owns the
// cart: the server is only told about it at propose time.
package cart

import (
	"context"
	"errors"
	"log"

	"scanpos/internal/domain"
)

var ErrEmptyCart = errors.New("Cart is empty")

// Storage persists the single logical cart as an ordered line sequence.
type Storage interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
	Clear(ctx context.Context) error
}

// Accumulator applies cart operations through a load-modify-save cycle
// against durable storage. A failed load degrades to an empty cart; losing a
// cart is accepted, inventing one is not.
type Accumulator struct {
	storage Storage
}

func New(storage Storage) *Accumulator {
	return &Accumulator{storage: storage}
}

// Lines returns the current ordered line sequence.
func (a *Accumulator) Lines(ctx context.Context) []domain.CartLine {
	lines, err := a.storage.Load(ctx)
	if err != nil {
		log.Printf("[cart] WARN: failed to load cart, treating as empty: %v", err)
		return nil
	}
	return lines
}

// Add appends a snapshot line. Duplicate barcodes append duplicate lines.
func (a *Accumulator) Add(ctx context.Context, line domain.CartLine) error {
	lines := a.Lines(ctx)
	lines = append(lines, line)
	return a.storage.Save(ctx, lines)
}

// Remove drops every line carrying the barcode and reports how many went.
func (a *Accumulator) Remove(ctx context.Context, barcode string) (int, error) {
	lines := a.Lines(ctx)
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if line.Barcode == barcode {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := a.storage.Save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (a *Accumulator) Clear(ctx context.Context) error {
	return a.storage.Clear(ctx)
}

// Total is computed freshly from the current lines on every call; there is no
// cached aggregate to go stale.
func (a *Accumulator) Total(ctx context.Context) float64 {
	total := 0.0
	for _, line := range a.Lines(ctx) {
		total += line.Price
	}
	return total
}

// Barcodes returns the barcode of every line in order, duplicates included.
func (a *Accumulator) Barcodes(ctx context.Context) []string {
	lines := a.Lines(ctx)
	barcodes := make([]string, 0, len(lines))
	for _, line := range lines {
		barcodes = append(barcodes, line.Barcode)
	}
	return barcodes
}
