package entity

import (
	"github.com/shopspring/decimal"
)

// Amount is a monetary value together with its display text.
type Amount struct {
	Value decimal.Decimal `json:"value"`
	Text  string          `json:"text"`
}

// InvoiceDisplay is the fully resolved bill detail handed to the app.
// Every key is always present. PaidAt is "" unless the bill is paid with a
// known payment time.
type InvoiceDisplay struct {
	ID            string        `json:"id"`
	Code          string        `json:"code"`
	TableName     string        `json:"table_name"`
	PlayTime      string        `json:"play_time"`
	Products      []ProductLine `json:"products"`
	PlayAmount    Amount        `json:"play_amount"`
	ServiceAmount Amount        `json:"service_amount"`
	SubTotal      Amount        `json:"sub_total"`
	Surcharge     Amount        `json:"surcharge"`
	TotalDiscount Amount        `json:"total_discount"`
	Total         Amount        `json:"total"`
	Paid          bool          `json:"paid"`
	PaidLabel     string        `json:"paid_label"`
	PaidAt        string        `json:"paid_at"`
	PaymentMethod string        `json:"payment_method"`
	StaffName     string        `json:"staff_name"`
	Note          string        `json:"note"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

// ProductLine is one purchased product on the bill detail.
type ProductLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Amount   Amount  `json:"amount"`
}

// InvoiceRow is one entry of the invoice list.
type InvoiceRow struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	TableName     string `json:"table_name"`
	CreatedAt     string `json:"created_at"`
	PaymentMethod string `json:"payment_method"`
	PaymentIcon   string `json:"payment_icon"`
	Paid          bool   `json:"paid"`
	PaidAt        string `json:"paid_at"`
	Total         Amount `json:"total"`
}

// InvoiceStats summarises the unfiltered invoice list.
type InvoiceStats struct {
	Total  int `json:"total"`
	Paid   int `json:"paid"`
	Unpaid int `json:"unpaid"`
}
