package enum

import (
	"encoding/json"
	"strings"
)

// InvoiceTab selects which bills the invoice list shows
type InvoiceTab int

const (
	InvoiceTabAll    InvoiceTab = 0
	InvoiceTabPaid   InvoiceTab = 1
	InvoiceTabUnpaid InvoiceTab = 2
)

func (t InvoiceTab) String() string {
	names := [...]string{"all", "paid", "unpaid"}
	if int(t) < 0 || int(t) >= len(names) {
		return "all"
	}
	return names[t]
}

func (t InvoiceTab) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *InvoiceTab) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ParseInvoiceTab(str)
	return nil
}

// ParseInvoiceTab maps a query value to a tab; unknown values select all bills.
func ParseInvoiceTab(s string) InvoiceTab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return InvoiceTabPaid
	case "unpaid":
		return InvoiceTabUnpaid
	default:
		return InvoiceTabAll
	}
}
