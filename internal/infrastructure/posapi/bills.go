package posapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
)

// CreateBillRequest is the body of POST /bills.
type CreateBillRequest struct {
	Session       string            `json:"session"`
	Table         string            `json:"table"`
	TableName     string            `json:"tableName,omitempty"`
	AreaID        *string           `json:"areaId"`
	Items         []BillItemRequest `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	Paid          bool              `json:"paid"`
	PaidAt        time.Time         `json:"paidAt"`
	Staff         *string           `json:"staff"`
	Note          string            `json:"note"`
}

// BillItemRequest is a play or product line of a new bill.
// Amounts are sent as plain JSON numbers.
type BillItemRequest struct {
	Type          string   `json:"type"`
	ProductID     string   `json:"productId,omitempty"`
	NameSnapshot  string   `json:"nameSnapshot,omitempty"`
	PriceSnapshot *float64 `json:"priceSnapshot,omitempty"`
	Qty           *float64 `json:"qty,omitempty"`
	Minutes       *float64 `json:"minutes,omitempty"`
	RatePerHour   *float64 `json:"ratePerHour,omitempty"`
	Amount        float64  `json:"amount"`
	Note          string   `json:"note"`
}

type payBillRequest struct {
	PaymentMethod string    `json:"paymentMethod"`
	PaidAt        time.Time `json:"paidAt"`
}

// ListBills returns every bill. A response without a list yields no bills.
func (c *Client) ListBills(ctx context.Context) ([]entity.RawInvoice, error) {
	var data json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/bills", nil, nil, &data); err != nil {
		return nil, err
	}
	page, err := decodePage[entity.RawInvoice](data)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetBill returns one bill. A missing data object yields an empty bill.
func (c *Client) GetBill(ctx context.Context, id string) (*entity.RawInvoice, error) {
	var inv entity.RawInvoice
	if _, err := c.doJSON(ctx, http.MethodGet, "/bills/"+url.PathEscape(id), nil, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateBill posts a new bill and returns what the POS API stored.
func (c *Client) CreateBill(ctx context.Context, req CreateBillRequest) (*entity.RawInvoice, error) {
	if req.Items == nil {
		req.Items = []BillItemRequest{}
	}
	var inv entity.RawInvoice
	if _, err := c.doJSON(ctx, http.MethodPost, "/bills", nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// PayBill marks a bill as paid.
func (c *Client) PayBill(ctx context.Context, id, paymentMethod string, paidAt time.Time) (*entity.RawInvoice, error) {
	body := payBillRequest{PaymentMethod: paymentMethod, PaidAt: paidAt.UTC()}

	var inv entity.RawInvoice
	if _, err := c.doJSON(ctx, http.MethodPatch, "/bills/"+url.PathEscape(id)+"/pay", nil, body, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
