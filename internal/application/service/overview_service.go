package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
	"github.com/bidacafe/pos-gateway/internal/domain/invoiceview"
	"github.com/bidacafe/pos-gateway/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DateLayout is how the overview screen reads and shows dates.
const DateLayout = "02/01/2006"

// DateRange is an inclusive range of calendar days in the store's zone.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls on one of the range's days.
func (r DateRange) Contains(t time.Time) bool {
	t = t.In(r.From.Location())
	return !t.Before(r.From) && t.Before(r.To.AddDate(0, 0, 1))
}

// ResolveRange turns a preset or explicit dd/MM/yyyy bounds into a range.
// Weeks run Monday to Sunday. Missing custom bounds mean today.
func ResolveRange(preset enum.RangePreset, from, to string, now time.Time, loc *time.Location) (DateRange, error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch preset {
	case enum.RangePresetToday:
		return DateRange{From: today, To: today}, nil
	case enum.RangePresetWeek:
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}, nil
	case enum.RangePresetMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{From: first, To: first.AddDate(0, 1, -1)}, nil
	case enum.RangePresetYear:
		return DateRange{
			From: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc),
			To:   time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, loc),
		}, nil
	}

	rng := DateRange{From: today, To: today}
	var err error
	if from = strings.TrimSpace(from); from != "" {
		if rng.From, err = time.ParseInLocation(DateLayout, from, loc); err != nil {
			return DateRange{}, apperror.NewBadRequestError("from must be a dd/mm/yyyy date")
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if rng.To, err = time.ParseInLocation(DateLayout, to, loc); err != nil {
			return DateRange{}, apperror.NewBadRequestError("to must be a dd/mm/yyyy date")
		}
	}
	if rng.From.After(rng.To) {
		return DateRange{}, apperror.NewBadRequestError("from must not be after to")
	}
	return rng, nil
}

// OverviewService computes the revenue overview from the bill list.
type OverviewService struct {
	loc *time.Location
	log *zap.Logger
	now func() time.Time
}

// NewOverviewService creates a new overview service
func NewOverviewService(loc *time.Location, log *zap.Logger) *OverviewService {
	if loc == nil {
		loc = time.Local
	}
	return &OverviewService{loc: loc, log: log.Named("overview"), now: time.Now}
}

// Range resolves the range for a request against the current time.
func (s *OverviewService) Range(preset enum.RangePreset, from, to string) (DateRange, error) {
	return ResolveRange(preset, from, to, s.now(), s.loc)
}

// GetOverview fetches every bill and summarises those dated inside rng.
func (s *OverviewService) GetOverview(ctx context.Context, api BillAPI, rng DateRange) (*entity.RevenueOverview, error) {
	bills, err := api.ListBills(ctx)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	overview := Summarize(bills, rng, s.loc)
	return &overview, nil
}

// Summarize aggregates bills dated inside rng. A bill is dated by paidAt when
// paid, else createdAt; bills with neither are skipped. Money sums count paid
// bills only.
func Summarize(bills []entity.RawInvoice, rng DateRange, loc *time.Location) entity.RevenueOverview {
	opts := invoiceview.Options{Location: loc}

	var revenue, play, products, discount decimal.Decimal
	overview := entity.RevenueOverview{
		From:  rng.From.Format(DateLayout),
		To:    rng.To.Format(DateLayout),
		Daily: []entity.DailyRevenue{},
	}

	type day struct {
		key     string
		row     entity.DailyRevenue
		revenue decimal.Decimal
	}
	days := map[string]*day{}

	for i := range bills {
		bill := &bills[i]
		paid := bill.Paid != nil && *bill.Paid

		stamp := bill.CreatedAt
		if paid && bill.PaidAt != nil {
			stamp = bill.PaidAt
		}
		if stamp == nil {
			continue
		}
		at := stamp.In(loc)
		if !rng.Contains(at) {
			continue
		}

		key := at.Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &day{key: key, row: entity.DailyRevenue{Date: at.Format(DateLayout)}}
			days[key] = d
		}
		overview.InvoiceCount++
		d.row.InvoiceCount++
		if !paid {
			overview.UnpaidCount++
			continue
		}

		overview.PaidCount++
		d.row.PaidCount++

		display := invoiceview.Reconcile(bill, opts)
		revenue = revenue.Add(display.Total.Value)
		d.revenue = d.revenue.Add(display.Total.Value)
		play = play.Add(display.PlayAmount.Value)
		discount = discount.Add(display.TotalDiscount.Value)
		for _, line := range display.Products {
			products = products.Add(line.Amount.Value)
			overview.ItemCount += line.Quantity
		}
	}

	overview.Revenue = invoiceview.NewAmount(revenue)
	overview.PlayRevenue = invoiceview.NewAmount(play)
	overview.ProductRevenue = invoiceview.NewAmount(products)
	overview.DiscountTotal = invoiceview.NewAmount(discount)

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d := days[k]
		d.row.Revenue = invoiceview.NewAmount(d.revenue)
		overview.Daily = append(overview.Daily, d.row)
	}
	return overview
}

const overviewSheet = "Doanh thu"

// ExportOverview renders the overview as an .xlsx workbook.
func (s *OverviewService) ExportOverview(ctx context.Context, api BillAPI, rng DateRange) ([]byte, string, error) {
	overview, err := s.GetOverview(ctx, api, rng)
	if err != nil {
		return nil, "", err
	}

	data, err := WriteOverviewXLSX(overview)
	if err != nil {
		s.log.Error("overview export failed", zap.Error(err))
		return nil, "", err
	}
	filename := fmt.Sprintf("doanh-thu_%s_%s.xlsx", rng.From.Format("20060102"), rng.To.Format("20060102"))
	return data, filename, nil
}

// WriteOverviewXLSX lays the overview out as a single sheet: a summary block
// followed by the per-day table.
func WriteOverviewXLSX(overview *entity.RevenueOverview) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Từ ngày", overview.From},
		{"Đến ngày", overview.To},
		{"Số hóa đơn", overview.InvoiceCount},
		{"Đã thanh toán", overview.PaidCount},
		{"Chưa thanh toán", overview.UnpaidCount},
		{"Doanh thu", overview.Revenue.Value.InexactFloat64()},
		{"Tiền giờ chơi", overview.PlayRevenue.Value.InexactFloat64()},
		{"Tiền sản phẩm", overview.ProductRevenue.Value.InexactFloat64()},
		{"Giảm giá", overview.DiscountTotal.Value.InexactFloat64()},
	}
	row := 1
	for _, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(overviewSheet, cell, &values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(overviewSheet, cell, cell, bold); err != nil {
			return nil, err
		}
		row++
	}

	row++
	header, _ := excelize.CoordinatesToCellName(1, row)
	headerEnd, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetSheetRow(overviewSheet, header, &[]any{"Ngày", "Số hóa đơn", "Đã thanh toán", "Doanh thu"}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(overviewSheet, header, headerEnd, bold); err != nil {
		return nil, err
	}
	for _, d := range overview.Daily {
		row++
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{d.Date, d.InvoiceCount, d.PaidCount, d.Revenue.Value.InexactFloat64()}
		if err := f.SetSheetRow(overviewSheet, cell, &values); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(overviewSheet, "A", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
