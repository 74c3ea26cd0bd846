package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from a reconciled bill at print time and never stored.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNo     string          `json:"invoice_no"`
	Date          string          `json:"date"`
	Table         string          `json:"table"`
	Cashier       string          `json:"cashier,omitempty"`
	PlayTime      string          `json:"play_time,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	PlayAmount    decimal.Decimal `json:"play_amount"`
	ServiceAmount decimal.Decimal `json:"service_amount"`
	Surcharge     decimal.Decimal `json:"surcharge"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaidLabel     string          `json:"paid_label"`
	QRPayload     string          `json:"qr_payload,omitempty"`
}
