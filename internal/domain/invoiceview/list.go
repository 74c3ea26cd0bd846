package invoiceview

import (
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
)

// ListResult is the invoice list screen: filtered rows plus stats over all bills.
type ListResult struct {
	Items []entity.InvoiceRow  `json:"items"`
	Stats entity.InvoiceStats `json:"stats"`
}

// BuildRow renders one bill for the invoice list.
func BuildRow(inv *entity.RawInvoice, opts Options) entity.InvoiceRow {
	if inv == nil {
		inv = &entity.RawInvoice{}
	}
	loc := opts.location()

	id := nonEmpty(inv.ID)
	code := nonEmpty(inv.Code)
	if code == "" {
		code = id
	}
	method := nonEmpty(inv.PaymentMethod)
	if method == "" {
		method = ListUnknownMethod
	}

	row := entity.InvoiceRow{
		ID:            id,
		Code:          code,
		TableName:     ResolveTableName(inv),
		CreatedAt:     formatTimestamp(inv.CreatedAt, loc, ListTimeLayout),
		PaymentMethod: strings.ToUpper(method),
		PaymentIcon:   enum.PaymentIcon(method),
		Paid:          inv.Paid != nil && *inv.Paid,
		Total:         NewAmount(amountOrZero(inv.Total)),
	}
	if row.Paid && inv.PaidAt != nil {
		row.PaidAt = inv.PaidAt.In(loc).Format(ListTimeLayout)
	}
	return row
}

// MatchesTab filters strictly: the unpaid tab only shows bills whose paid
// flag is explicitly false.
func MatchesTab(inv *entity.RawInvoice, tab enum.InvoiceTab) bool {
	switch tab {
	case enum.InvoiceTabPaid:
		return inv.Paid != nil && *inv.Paid
	case enum.InvoiceTabUnpaid:
		return inv.Paid != nil && !*inv.Paid
	default:
		return true
	}
}

// MatchesSearch does a case-insensitive substring match over the code (or
// id), table name, payment method and the raw total digits.
func MatchesSearch(inv *entity.RawInvoice, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	code := nonEmpty(inv.Code)
	if code == "" {
		code = nonEmpty(inv.ID)
	}
	table := ""
	if inv.Table != nil {
		table = nonEmpty(inv.Table.Name)
	}
	if table == "" {
		table = nonEmpty(inv.TableName)
	}

	fields := []string{
		code,
		table,
		nonEmpty(inv.PaymentMethod),
		amountOrZero(inv.Total).String(),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// ComputeStats counts bills; anything not explicitly paid is unpaid.
func ComputeStats(invoices []entity.RawInvoice) entity.InvoiceStats {
	stats := entity.InvoiceStats{Total: len(invoices)}
	for i := range invoices {
		if p := invoices[i].Paid; p != nil && *p {
			stats.Paid++
		} else {
			stats.Unpaid++
		}
	}
	return stats
}

// BuildList filters bills by tab and query and renders the matching rows.
// Stats are computed on the unfiltered input.
func BuildList(invoices []entity.RawInvoice, tab enum.InvoiceTab, query string, opts Options) ListResult {
	result := ListResult{
		Items: []entity.InvoiceRow{},
		Stats: ComputeStats(invoices),
	}
	for i := range invoices {
		inv := &invoices[i]
		if !MatchesTab(inv, tab) || !MatchesSearch(inv, query) {
			continue
		}
		result.Items = append(result.Items, BuildRow(inv, opts))
	}
	return result
}
