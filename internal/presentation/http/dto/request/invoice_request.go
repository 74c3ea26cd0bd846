package request

import "time"

// InvoiceFilterRequest represents invoice list filter parameters
type InvoiceFilterRequest struct {
	Tab   string `form:"tab" binding:"omitempty,oneof=all paid unpaid"`
	Query string `form:"q"`
}

// SessionItemRequest is a product ordered during the table session.
type SessionItemRequest struct {
	ProductID     string  `json:"product_id"`
	NameSnapshot  string  `json:"name_snapshot" binding:"max=255"`
	PriceSnapshot float64 `json:"price_snapshot" binding:"min=0"`
	Qty           float64 `json:"qty" binding:"min=0"`
	Note          string  `json:"note"`
}

// TableSessionRequest is the running table session being closed.
type TableSessionRequest struct {
	ID          string               `json:"id" binding:"required"`
	TableID     string               `json:"table_id" binding:"required"`
	TableName   string               `json:"table_name"`
	AreaID      *string              `json:"area_id"`
	StartTime   *time.Time           `json:"start_time"`
	RatePerHour float64              `json:"rate_per_hour" binding:"min=0"`
	Staff       string               `json:"staff"`
	Items       []SessionItemRequest `json:"items" binding:"dive"`
}

// PaymentRequest is what the cashier entered on the payment sheet.
type PaymentRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash momo transfer card"`
	TableName     string  `json:"table_name"`
	StaffID       string  `json:"staff_id"`
	Note          string  `json:"note" binding:"max=1000"`
	RatePerHour   float64 `json:"rate_per_hour" binding:"min=0"`
}

// CreateInvoiceRequest closes a table session into a paid bill.
type CreateInvoiceRequest struct {
	Session TableSessionRequest `json:"session" binding:"required"`
	Payment PaymentRequest      `json:"payment"`
}

// PayInvoiceRequest represents a pay invoice request
type PayInvoiceRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash momo transfer card"`
}
