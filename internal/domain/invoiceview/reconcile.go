package invoiceview

import (
	"strings"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/pkg/money"
	"github.com/shopspring/decimal"
)

// Date layouts used on screen.
const (
	DetailTimeLayout = "15:04:05 02/01/2006"
	ListTimeLayout   = "02/01/2006 • 15:04"
)

// Options controls locale-dependent rendering.
type Options struct {
	// Location is the store's time zone; nil means time.Local.
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Reconcile builds the bill detail display model.
func Reconcile(inv *entity.RawInvoice, opts Options) entity.InvoiceDisplay {
	if inv == nil {
		inv = &entity.RawInvoice{}
	}
	loc := opts.location()
	products, _ := PartitionLineItems(inv)

	display := entity.InvoiceDisplay{
		ID:            orUnknown(inv.ID),
		Code:          orUnknown(inv.Code),
		TableName:     ResolveTableName(inv),
		PlayTime:      ResolvePlayTime(inv, loc),
		Products:      make([]entity.ProductLine, 0, len(products)),
		PlayAmount:    NewAmount(ResolvePlayAmount(inv)),
		ServiceAmount: NewAmount(amountOrZero(inv.ServiceAmount)),
		SubTotal:      NewAmount(amountOrZero(inv.SubTotal)),
		Surcharge:     NewAmount(amountOrZero(inv.Surcharge)),
		TotalDiscount: NewAmount(TotalDiscount(inv)),
		Total:         NewAmount(amountOrZero(inv.Total)),
		Paid:          inv.Paid != nil && *inv.Paid,
		PaymentMethod: UnknownPayment,
		StaffName:     ResolveStaffName(inv.Staff),
		Note:          EmptyNote,
		CreatedAt:     formatTimestamp(inv.CreatedAt, loc, DetailTimeLayout),
		UpdatedAt:     formatTimestamp(inv.UpdatedAt, loc, DetailTimeLayout),
	}

	for _, p := range products {
		display.Products = append(display.Products, entity.ProductLine{
			Name:     ResolveItemName(p),
			Quantity: ResolveQuantity(p),
			Amount:   NewAmount(amountOrZero(p.Amount)),
		})
	}

	if display.Paid {
		display.PaidLabel = PaidLabel
		if inv.PaidAt != nil {
			display.PaidAt = inv.PaidAt.In(loc).Format(DetailTimeLayout)
		}
	} else {
		display.PaidLabel = UnpaidLabel
	}

	if s := nonEmpty(inv.PaymentMethod); s != "" {
		display.PaymentMethod = strings.ToUpper(s)
	}
	if s := nonEmpty(inv.Note); s != "" {
		display.Note = s
	}

	return display
}

// ResolveQuantity returns qty, then quantity, then 1. Zero counts as not set.
func ResolveQuantity(item entity.LineItem) float64 {
	if item.Qty != nil && *item.Qty != 0 {
		return *item.Qty
	}
	if item.Quantity != nil && *item.Quantity != 0 {
		return *item.Quantity
	}
	return 1
}

// NewAmount pairs a value with its "1.500 đ" display text.
func NewAmount(v decimal.Decimal) entity.Amount {
	return entity.Amount{Value: v, Text: money.Format(v)}
}

func orUnknown(s *string) string {
	if v := nonEmpty(s); v != "" {
		return v
	}
	return UnknownMarker
}

func formatTimestamp(ts *entity.Timestamp, loc *time.Location, layout string) string {
	if ts == nil {
		return UnknownMarker
	}
	return ts.In(loc).Format(layout)
}
