// Package sale drives the two-step checkout: propose the cart to the server
// for a pending cart id, then finalize with customer details to receive the
// bill. Any failure leaves the flow at its prior step.
package sale

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"scanpos/internal/cart"
	"scanpos/internal/domain"
)

// MinPhoneDigits is the only length constraint enforced on customer input.
const MinPhoneDigits = 10

var (
	// ErrValidation marks failures caught before any network call.
	ErrValidation = errors.New("validation error")
	// ErrNotProposed means Finalize ran without a pending cart id.
	ErrNotProposed = errors.New("no proposed cart, run checkout again")
)

type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateProposed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateProposed:
		return "proposed"
	}
	return "unknown"
}

// Gateway is the transport dependency; satisfied by the API client.
type Gateway interface {
	ProceedCart(ctx context.Context, req domain.ProceedCartRequest) (string, error)
	FinalizeSale(ctx context.Context, req domain.FinalizeSaleRequest) (domain.Bill, error)
}

type CustomerDetails struct {
	Name        string
	Phone       string
	PaymentMode string
}

// ValidateCustomer rejects incomplete customer input. It never touches the
// network; callers rely on that to fail fast.
func ValidateCustomer(d CustomerDetails) error {
	if d.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if len(d.Phone) < MinPhoneDigits {
		return fmt.Errorf("%w: customer phone must be at least %d digits", ErrValidation, MinPhoneDigits)
	}
	if !domain.ValidPaymentMode(d.PaymentMode) {
		return fmt.Errorf("%w: payment mode must be one of Cash, Card, UPI", ErrValidation)
	}
	return nil
}

// Finalizer walks a cart through Empty → Populated → Proposed and back to
// Empty once a bill is issued.
type Finalizer struct {
	gateway Gateway
	cart    *cart.Accumulator
	// pendingCartID holds the server-allocated id between Propose and a
	// successful Finalize.
	pendingCartID string
	newRequestKey func() string
}

func NewFinalizer(gateway Gateway, accumulator *cart.Accumulator) *Finalizer {
	return &Finalizer{
		gateway:       gateway,
		cart:          accumulator,
		newRequestKey: uuid.NewString,
	}
}

func (f *Finalizer) State(ctx context.Context) State {
	if f.pendingCartID != "" {
		return StateProposed
	}
	if len(f.cart.Lines(ctx)) > 0 {
		return StatePopulated
	}
	return StateEmpty
}

func (f *Finalizer) PendingCartID() string {
	return f.pendingCartID
}

// Propose submits the cart's barcodes and records the pending cart id. An
// empty cart is rejected locally before any network call.
func (f *Finalizer) Propose(ctx context.Context) (string, error) {
	barcodes := f.cart.Barcodes(ctx)
	if len(barcodes) == 0 {
		return "", cart.ErrEmptyCart
	}

	cartID, err := f.gateway.ProceedCart(ctx, domain.ProceedCartRequest{
		Barcodes:   barcodes,
		RequestKey: f.newRequestKey(),
	})
	if err != nil {
		return "", err
	}

	f.pendingCartID = cartID
	return cartID, nil
}

// Finalize validates customer details, submits them with the pending cart id
// and, on success, clears the device cart. A failed call keeps the pending id
// so the user may retry finalization.
func (f *Finalizer) Finalize(ctx context.Context, details CustomerDetails) (domain.Bill, error) {
	if err := ValidateCustomer(details); err != nil {
		return domain.Bill{}, err
	}
	if f.pendingCartID == "" {
		return domain.Bill{}, ErrNotProposed
	}

	bill, err := f.gateway.FinalizeSale(ctx, domain.FinalizeSaleRequest{
		CustomerName:  details.Name,
		CustomerPhone: details.Phone,
		PaymentMode:   details.PaymentMode,
		CartID:        f.pendingCartID,
		RequestKey:    f.newRequestKey(),
	})
	if err != nil {
		return domain.Bill{}, err
	}

	f.pendingCartID = ""
	// The sale is already finalized server-side; a cart that refuses to
	// clear must not fail the bill.
	if err := f.cart.Clear(ctx); err != nil {
		log.Printf("[sale] WARN: failed to clear cart after finalize: %v", err)
	}
	return bill, nil
}

// Abandon drops the pending cart id, returning the flow to the cart review
// step. The server-side pending cart is left to expire on its own.
func (f *Finalizer) Abandon() {
	f.pendingCartID = ""
}
