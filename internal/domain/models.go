package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON number that the backend sometimes serialises as a
// string ("12.50") and sometimes as a number (12.5).
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// FlexInt is the integer counterpart of FlexFloat. Fractional wire values are
// truncated, matching what the historical clients did with parseInt.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(f)
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

type Product struct {
	ID          string    `json:"_id,omitempty"`
	Barcode     string    `json:"barcode"`
	Name        string    `json:"name"`
	Price       FlexFloat `json:"price"`
	Stock       FlexInt   `json:"stock"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"productImage,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
}

// CartLine is a price snapshot taken when a product is sold into the cart.
// It carries no quantity: duplicate scans append duplicate lines.
type CartLine struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type BillItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Bill is the immutable record of a finalized sale, as computed by the server.
type Bill struct {
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	PaymentMode   string     `json:"paymentMode"`
	Date          string     `json:"date"`
	Items         []BillItem `json:"items"`
	TotalAmount   FlexFloat  `json:"totalAmount"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type ProductUpsertRequest struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Image       string  `json:"productImage,omitempty"`
}

type ProceedCartRequest struct {
	Barcodes   []string `json:"barcodes"`
	RequestKey string   `json:"requestKey,omitempty"`
}

type ProceedCartResponse struct {
	CartID string `json:"cartId"`
}

type FinalizeSaleRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	PaymentMode   string `json:"paymentMode"`
	CartID        string `json:"cartId"`
	RequestKey    string `json:"requestKey,omitempty"`
}

type FinalizeSaleResponse struct {
	Bill Bill `json:"bill"`
}

type SellerStat struct {
	Barcode    string  `json:"barcode"`
	Name       string  `json:"name"`
	SalesCount FlexInt `json:"sales_count"`
}

type ChartPoint struct {
	Name  string    `json:"name"`
	Sales FlexFloat `json:"sales"`
}

// SalesItem is one row of the flat item_details projection the report
// endpoint returns: one entry per sold line, repeated per cart.
type SalesItem struct {
	CartID          string    `json:"cart_id"`
	CustomerDetails string    `json:"customer_details"`
	Barcode         string    `json:"barcode"`
	ProductName     string    `json:"product_name"`
	CartAmount      FlexFloat `json:"cart_amount"`
	PaymentMode     string    `json:"payment_mode"`
	SalesDate       string    `json:"sales_date"`
}

type SalesReport struct {
	TotalAmount    FlexFloat    `json:"total_amount"`
	Top5Products   []SellerStat `json:"top5Products"`
	Least5Products []SellerStat `json:"least5Products"`
	SellChartData  []ChartPoint `json:"sellChartData"`
	ItemDetails    []SalesItem  `json:"item_details"`
}

const (
	PaymentModeCash = "Cash"
	PaymentModeCard = "Card"
	PaymentModeUPI  = "UPI"
)

// PaymentModes lists every accepted payment mode, in display order.
var PaymentModes = []string{PaymentModeCash, PaymentModeCard, PaymentModeUPI}

func ValidPaymentMode(mode string) bool {
	for _, m := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}
