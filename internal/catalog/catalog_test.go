package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"scanpos/internal/domain"
)

type fakeFetcher struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeFetcher) ShowProducts(_ context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func TestSortByCreatedAtDescending(t *testing.T) {
	products := []domain.Product{
		{Barcode: "1", Name: "Old", CreatedAt: "2024-01-01T10:00:00Z"},
		{Barcode: "2", Name: "New", CreatedAt: "2025-06-01T10:00:00Z"},
		{Barcode: "3", Name: "Mid", CreatedAt: "2024-12-01T10:00:00Z"},
	}

	Sort(products)

	want := []string{"New", "Mid", "Old"}
	for i, name := range want {
		if products[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, products[i].Name)
		}
	}
}

func TestSortFallsBackToIDThenName(t *testing.T) {
	byID := []domain.Product{
		{ID: "a1", Name: "First"},
		{ID: "c3", Name: "Third"},
		{ID: "b2", Name: "Second"},
	}
	Sort(byID)
	if byID[0].ID != "c3" || byID[2].ID != "a1" {
		t.Fatalf("expected id-descending order, got %+v", byID)
	}

	byName := []domain.Product{
		{Barcode: "1", Name: "Apple"},
		{Barcode: "2", Name: "Mango"},
		{Barcode: "3", Name: "Banana"},
	}
	Sort(byName)
	if byName[0].Name != "Mango" || byName[2].Name != "Apple" {
		t.Fatalf("expected name-descending order, got %+v", byName)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	build := func() []domain.Product {
		return []domain.Product{
			{ID: "x", Name: "NoDate"},
			{Barcode: "9", Name: "Plain"},
			{ID: "y", Name: "Dated", CreatedAt: "2025-01-01T00:00:00Z"},
			{ID: "z", Name: "Dated2", CreatedAt: "2025-02-01T00:00:00Z"},
			{Barcode: "7", Name: "Plain2"},
		}
	}

	first := build()
	second := build()
	Sort(first)
	Sort(second)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("sorting identical input twice diverged:\n%+v\n%+v", first, second)
	}
}

func TestFilterMatchesNameAndBarcode(t *testing.T) {
	products := []domain.Product{
		{Barcode: "8901", Name: "Coconut Oil"},
		{Barcode: "7702", Name: "Bath Soap"},
		{Barcode: "8903", Name: "Olive Oil"},
	}

	oils := Filter(products, "oil")
	if len(oils) != 2 {
		t.Fatalf("expected 2 oil products, got %d", len(oils))
	}

	byBarcode := Filter(products, "770")
	if len(byBarcode) != 1 || byBarcode[0].Name != "Bath Soap" {
		t.Fatalf("expected barcode match for Bath Soap, got %+v", byBarcode)
	}

	all := Filter(products, "  ")
	if len(all) != 3 {
		t.Fatalf("blank query should return everything, got %d", len(all))
	}
}

func TestProductsFetchErrorYieldsEmptyResult(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	reader := NewReader(fetcher, NoopCache{}, time.Second)

	products, err := reader.Products(context.Background())
	if err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
	if len(products) != 0 {
		t.Fatalf("expected empty result on failure, got %d products", len(products))
	}

	filtered, err := reader.Search(context.Background(), "oil")
	if err == nil || len(filtered) != 0 {
		t.Fatalf("expected filtered list to be empty on failure too")
	}
}

type fixedCache struct {
	products []domain.Product
}

func (c fixedCache) Get(_ context.Context, _ string) ([]domain.Product, bool, error) {
	return c.products, true, nil
}

func (c fixedCache) Set(_ context.Context, _ string, _ []domain.Product, _ time.Duration) error {
	return nil
}

func TestProductsServedFromCacheSkipFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	cached := []domain.Product{{Barcode: "1", Name: "Cached"}}
	reader := NewReader(fetcher, fixedCache{products: cached}, time.Second)

	products, err := reader.Products(context.Background())
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Cached" {
		t.Fatalf("expected cached snapshot, got %+v", products)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch on cache hit, got %d calls", fetcher.calls)
	}
}

func TestProductsSortedAfterFetch(t *testing.T) {
	fetcher := &fakeFetcher{products: []domain.Product{
		{Barcode: "1", Name: "Old", CreatedAt: "2024-01-01T00:00:00Z"},
		{Barcode: "2", Name: "New", CreatedAt: "2025-01-01T00:00:00Z"},
	}}
	reader := NewReader(fetcher, nil, time.Second)

	products, err := reader.Products(context.Background())
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if products[0].Name != "New" {
		t.Fatalf("expected newest first, got %+v", products)
	}
}
