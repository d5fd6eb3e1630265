// Package report shapes the sales-report endpoint's flat projections into
// the summary and per-cart history views.
package report

import (
	"context"
	"strings"

	"scanpos/internal/domain"
)

const defaultDays = 30

// Fetcher is the transport dependency; satisfied by the API client.
type Fetcher interface {
	SalesReport(ctx context.Context, days int) (domain.SalesReport, error)
}

type Viewer struct {
	fetcher Fetcher
}

func NewViewer(fetcher Fetcher) *Viewer {
	return &Viewer{fetcher: fetcher}
}

// Report returns the aggregated report for the trailing days window.
func (v *Viewer) Report(ctx context.Context, days int) (domain.SalesReport, error) {
	if days < 1 {
		days = defaultDays
	}
	return v.fetcher.SalesReport(ctx, days)
}

// CartHistory is one completed sale reassembled from its item rows.
type CartHistory struct {
	CartID      string
	Customer    string
	Phone       string
	Items       []domain.SalesItem
	Total       float64
	PaymentMode string
	Date        string
}

// History fetches the report and groups its item rows by cart.
func (v *Viewer) History(ctx context.Context, days int) ([]CartHistory, error) {
	rep, err := v.Report(ctx, days)
	if err != nil {
		return nil, err
	}
	return GroupItems(rep.ItemDetails), nil
}

// GroupItems folds flat item rows into one entry per cart id, preserving
// first-seen order. The customer_details column packs "name | phone".
func GroupItems(items []domain.SalesItem) []CartHistory {
	index := make(map[string]int, len(items))
	grouped := make([]CartHistory, 0, len(items))

	for _, item := range items {
		pos, seen := index[item.CartID]
		if !seen {
			name, phone := splitCustomerDetails(item.CustomerDetails)
			grouped = append(grouped, CartHistory{
				CartID:      item.CartID,
				Customer:    name,
				Phone:       phone,
				Total:       float64(item.CartAmount),
				PaymentMode: item.PaymentMode,
				Date:        item.SalesDate,
			})
			pos = len(grouped) - 1
			index[item.CartID] = pos
		}
		grouped[pos].Items = append(grouped[pos].Items, item)
	}
	return grouped
}

func splitCustomerDetails(details string) (name string, phone string) {
	name, phone = "Unknown", "N/A"
	parts := strings.SplitN(details, " | ", 2)
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		phone = strings.TrimSpace(parts[1])
	}
	return name, phone
}
