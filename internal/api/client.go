// Package api is the single transport surface for the remote POS service.
// Every endpoint the terminal consumes lives here; callers never touch
// net/http directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scanpos/internal/domain"
	"scanpos/pkg/retry"
)

var (
	// ErrNoCredential means no usable access token is stored on the device.
	ErrNoCredential = errors.New("no access token, please login again")
	// ErrUnauthorized means the server rejected the stored credential.
	ErrUnauthorized = errors.New("unauthorized, please login again")
)

// ServerError carries a business failure reported by the server. Its message
// is surfaced to the user verbatim.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// TokenSource supplies the bearer credential for authenticated calls and is
// told when the server rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate() error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	policy     retry.Policy
}

// transport is shared by every client; the terminal talks to one backend.
var transport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, policy retry.Policy) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		tokens: tokens,
		policy: policy,
	}
}

// Login exchanges credentials for an access token. It is the only endpoint
// that runs without a bearer token.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", req, &resp, false, true)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if resp.AccessToken == "" {
		return domain.LoginResponse{}, errors.New("login response missing access token")
	}
	return resp, nil
}

type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

// ShowProducts fetches the full catalog.
func (c *Client) ShowProducts(ctx context.Context) ([]domain.Product, error) {
	var env productsEnvelope
	err := c.call(ctx, http.MethodGet, "/product/show-product/*", nil, &env, true, true)
	if err != nil {
		return nil, err
	}
	return env.Products, nil
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// UpsertProduct creates a product, or restocks an existing barcode; the
// backend routes both through the same endpoint.
func (c *Client) UpsertProduct(ctx context.Context, req domain.ProductUpsertRequest) (string, error) {
	var env messageEnvelope
	err := c.call(ctx, http.MethodPost, "/product/add-product", req, &env, true, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Checkout signals a stock decrement for a single barcode. The device cart is
// only appended to after this call succeeds.
func (c *Client) Checkout(ctx context.Context, barcode string) error {
	body := map[string]string{"barcode": barcode}
	return c.call(ctx, http.MethodPost, "/product/checkout", body, nil, true, false)
}

// SalesReport returns aggregated sales for the trailing number of days.
func (c *Client) SalesReport(ctx context.Context, days int) (domain.SalesReport, error) {
	body := map[string]int{"days": days}
	var report domain.SalesReport
	err := c.call(ctx, http.MethodPost, "/product/sales-report", body, &report, true, true)
	if err != nil {
		return domain.SalesReport{}, err
	}
	return report, nil
}

// ProceedCart submits the cart's barcodes and receives a pending cart id.
func (c *Client) ProceedCart(ctx context.Context, req domain.ProceedCartRequest) (string, error) {
	var resp domain.ProceedCartResponse
	err := c.call(ctx, http.MethodPost, "/proceed-cart", req, &resp, true, false)
	if err != nil {
		return "", err
	}
	if resp.CartID == "" {
		return "", errors.New("server did not return a cart id")
	}
	return resp.CartID, nil
}

// FinalizeSale converts a proposed cart into a bill.
func (c *Client) FinalizeSale(ctx context.Context, req domain.FinalizeSaleRequest) (domain.Bill, error) {
	var resp domain.FinalizeSaleResponse
	err := c.call(ctx, http.MethodPost, "/finalize-sale", req, &resp, true, false)
	if err != nil {
		return domain.Bill{}, err
	}
	return resp.Bill, nil
}

// call performs one JSON round trip. Mutating endpoints run a single attempt:
// the server's behaviour on a replayed checkout or finalize is undefined, so
// only reads go through the retry policy.
func (c *Client) call(ctx context.Context, method, path string, body any, out any, authed bool, retryable bool) error {
	token := ""
	if authed {
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if token == "" {
			return ErrNoCredential
		}
	}

	policy := c.policy
	if !retryable {
		policy = retry.Policy{MaxAttempts: 1}
	}
	policy.Retryable = transientError

	return retry.Do(ctx, policy, func() error {
		return c.roundTrip(ctx, method, path, body, out, token)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, out any, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if token != "" {
			_ = c.tokens.Invalidate()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

// serverMessage extracts the backend's error string; it answers with either
// an "error" or a "message" field depending on the endpoint.
func serverMessage(data []byte) string {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// transientError treats network and 5xx failures as retryable. Business
// rejections and auth failures are terminal.
func transientError(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoCredential) {
		return false
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Status >= 500
	}
	return true
}
