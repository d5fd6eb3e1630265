// Package catalog reads the product catalog from the remote service and
// shapes it for display: numeric normalization, deterministic ordering and
// substring filtering.
package catalog

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"scanpos/internal/domain"
)

const cacheKey = "catalog:products"

// Fetcher is the transport dependency; satisfied by the API client.
type Fetcher interface {
	ShowProducts(ctx context.Context) ([]domain.Product, error)
}

// Cache holds a recently fetched catalog snapshot.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Product, bool, error)
	Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) error
}

type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) ([]domain.Product, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ []domain.Product, _ time.Duration) error {
	return nil
}

type Reader struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
}

func NewReader(fetcher Fetcher, cache Cache, ttl time.Duration) *Reader {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Reader{fetcher: fetcher, cache: cache, ttl: ttl}
}

// Products returns the sorted catalog. On any failure the result is empty,
// never partial.
func (r *Reader) Products(ctx context.Context) ([]domain.Product, error) {
	if cached, ok, err := r.cache.Get(ctx, cacheKey); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Printf("[catalog] WARN: cache read failed: %v", err)
	}

	products, err := r.fetcher.ShowProducts(ctx)
	if err != nil {
		return nil, err
	}

	Sort(products)

	if err := r.cache.Set(ctx, cacheKey, products, r.ttl); err != nil {
		log.Printf("[catalog] WARN: cache write failed: %v", err)
	}
	return products, nil
}

// Search returns the sorted catalog narrowed by a case-insensitive name match
// or a raw barcode substring match. An empty query returns everything.
func (r *Reader) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := r.Products(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(products, query), nil
}

// Sort orders products newest-first with a fixed three-tier tie-break chain:
// creation timestamp, then server id, then name, each descending. The chain
// is the only defined ordering contract and must not be reordered.
func Sort(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.CreatedAt != "" && b.CreatedAt != "" {
			at, aerr := time.Parse(time.RFC3339, a.CreatedAt)
			bt, berr := time.Parse(time.RFC3339, b.CreatedAt)
			if aerr == nil && berr == nil {
				if !at.Equal(bt) {
					return at.After(bt)
				}
				return false
			}
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
			return false
		}
		if a.ID != "" && b.ID != "" {
			return a.ID > b.ID
		}
		return a.Name > b.Name
	})
}

// Filter matches the mobile search bar: lowercase substring on the name, raw
// substring on the barcode.
func Filter(products []domain.Product, query string) []domain.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}
	lower := strings.ToLower(query)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) || strings.Contains(p.Barcode, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
