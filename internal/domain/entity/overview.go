package entity

// RevenueOverview summarises bills over a date range. The sums are display
// figures computed from bill totals, not accounting records.
type RevenueOverview struct {
	From           string         `json:"from"`
	To             string         `json:"to"`
	InvoiceCount   int            `json:"invoice_count"`
	PaidCount      int            `json:"paid_count"`
	UnpaidCount    int            `json:"unpaid_count"`
	ItemCount      float64        `json:"item_count"`
	Revenue        Amount         `json:"revenue"`
	PlayRevenue    Amount         `json:"play_revenue"`
	ProductRevenue Amount         `json:"product_revenue"`
	DiscountTotal  Amount         `json:"discount_total"`
	Daily          []DailyRevenue `json:"daily"`
}

// DailyRevenue is one day of the overview table.
type DailyRevenue struct {
	Date         string `json:"date"`
	InvoiceCount int    `json:"invoice_count"`
	PaidCount    int    `json:"paid_count"`
	Revenue      Amount `json:"revenue"`
}
