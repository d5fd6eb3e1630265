// Package memory holds the cart in process memory. Used by tests and by runs
// that explicitly opt out of durable storage.
package memory

import (
	"context"
	"sync"

	"scanpos/internal/domain"
)

type Storage struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Load(_ context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *Storage) Save(_ context.Context, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	return nil
}

func (s *Storage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return nil
}
