// Package invoiceview turns loosely populated POS bills into display models.
//
// Nothing here returns an error: every missing or malformed field resolves
// to a fixed default so the app never renders an empty slot.
package invoiceview

import (
	"fmt"
	"math"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Display markers.
const (
	UnknownMarker     = "Không rõ"
	NoDataMarker      = "Không có dữ liệu"
	PlayChargeLabel   = "Tiền giờ chơi"
	UnknownPayment    = "KHÔNG RÕ"
	ListUnknownMethod = "không rõ"
	PaidLabel         = "Đã thanh toán"
	UnpaidLabel       = "Chưa thanh toán"
	EmptyNote         = "—"
)

// ResolvePlayTime describes how long the table was played.
//
// With both start and end times it renders "H:MM → H:MM (N phút)" using the
// wall clock in loc; otherwise it falls back to the play line item's minutes
// as "{h}h{m}m (N phút)". Negative durations are rendered as computed.
func ResolvePlayTime(inv *entity.RawInvoice, loc *time.Location) string {
	if inv == nil {
		return NoDataMarker
	}
	if inv.StartTime != nil && inv.EndTime != nil {
		start := inv.StartTime.In(loc)
		end := inv.EndTime.In(loc)
		minutes := roundHalfUp(float64(end.Sub(start)) / float64(time.Minute))
		return fmt.Sprintf("%d:%02d → %d:%02d (%s phút)",
			start.Hour(), start.Minute(), end.Hour(), end.Minute(), formatNumber(minutes))
	}

	if _, play := PartitionLineItems(inv); play != nil {
		minutes := 0.0
		if play.Minutes != nil {
			minutes = *play.Minutes
		}
		h := math.Floor(minutes / 60)
		m := math.Mod(minutes, 60)
		return fmt.Sprintf("%sh%sm (%s phút)", formatNumber(h), formatNumber(m), formatNumber(minutes))
	}

	return NoDataMarker
}

// ResolveItemName picks the label of a line item:
// name snapshot, name, product name, the play label for play items, unknown.
func ResolveItemName(item entity.LineItem) string {
	if s := nonEmpty(item.NameSnapshot); s != "" {
		return s
	}
	if s := nonEmpty(item.Name); s != "" {
		return s
	}
	if item.Product != nil {
		if s := nonEmpty(item.Product.Name); s != "" {
			return s
		}
	}
	if item.IsPlay() {
		return PlayChargeLabel
	}
	return UnknownMarker
}

// ResolveStaffName renders the cashier of a bill.
func ResolveStaffName(staff entity.StaffRef) string {
	switch staff.Kind {
	case entity.StaffPlainName:
		if staff.Plain != "" {
			return staff.Plain
		}
	case entity.StaffDetailed:
		if s := nonEmpty(staff.Name); s != "" {
			return s
		}
		if s := nonEmpty(staff.Username); s != "" {
			return s
		}
	}
	return UnknownMarker
}

// ResolveTableName prefers the populated table's name over the flat tableName.
func ResolveTableName(inv *entity.RawInvoice) string {
	if inv == nil {
		return UnknownMarker
	}
	if inv.Table != nil {
		if s := nonEmpty(inv.Table.Name); s != "" {
			return s
		}
	}
	if s := nonEmpty(inv.TableName); s != "" {
		return s
	}
	return UnknownMarker
}

// TotalDiscount sums every discount amount; missing amounts count as zero.
func TotalDiscount(inv *entity.RawInvoice) decimal.Decimal {
	total := decimal.Zero
	if inv == nil {
		return total
	}
	for _, d := range inv.Discounts {
		total = total.Add(amountOrZero(d.Amount))
	}
	return total
}

// PartitionLineItems returns the product items in received order and the
// first play item, or nil when the bill has none.
func PartitionLineItems(inv *entity.RawInvoice) ([]entity.LineItem, *entity.LineItem) {
	products := []entity.LineItem{}
	if inv == nil {
		return products, nil
	}
	var play *entity.LineItem
	for i := range inv.Items {
		item := inv.Items[i]
		switch {
		case item.IsProduct():
			products = append(products, item)
		case item.IsPlay() && play == nil:
			play = &inv.Items[i]
		}
	}
	return products, play
}

// ResolvePlayAmount returns the play item's amount, then the bill's
// playAmount, then zero. A zero amount counts as not set.
func ResolvePlayAmount(inv *entity.RawInvoice) decimal.Decimal {
	if inv == nil {
		return decimal.Zero
	}
	if _, play := PartitionLineItems(inv); play != nil {
		if play.Amount != nil && !play.Amount.IsZero() {
			return *play.Amount
		}
	}
	return amountOrZero(inv.PlayAmount)
}

func nonEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// formatNumber prints integers without a fraction and never prints -0.
func formatNumber(f float64) string {
	if f == 0 {
		f = 0
	}
	return decimal.NewFromFloat(f).String()
}
