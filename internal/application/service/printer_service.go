package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/invoiceview"
	"github.com/bidacafe/pos-gateway/pkg/money"
	"github.com/bidacafe/pos-gateway/pkg/printer"
	"github.com/bidacafe/pos-gateway/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService prints bill receipts on the counter's thermal printer.
type PrinterService struct {
	printer  printer.Printer
	width    int
	header   entity.ReceiptHeader
	invoices *InvoiceService
	log      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	width int,
	header entity.ReceiptHeader,
	invoices *InvoiceService,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		width:    width,
		header:   header,
		invoices: invoices,
		log:      log.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
		Width:      s.width,
	}
}

// TestPrint sends a sample receipt. The receipt is returned even when
// printing fails so the app can show it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:        s.header,
		InvoiceNo:     "TEST-001",
		Date:          time.Now().In(s.invoices.opts.Location).Format(invoiceview.DetailTimeLayout),
		Table:         "Bàn 1",
		Cashier:       "Hệ thống",
		PlayTime:      "1h0m (60 phút)",
		PaymentMethod: "CASH",
		Items: []entity.ReceiptItem{
			{Name: "Sting", Quantity: 2, Total: decimal.NewFromInt(30000)},
		},
		PlayAmount: decimal.NewFromInt(40000),
		Total:      decimal.NewFromInt(70000),
		PaidLabel:  invoiceview.PaidLabel,
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintInvoice reconciles a bill and prints its receipt.
func (s *PrinterService) PrintInvoice(ctx context.Context, api BillAPI, id string) (*entity.Receipt, error) {
	display, err := s.invoices.Get(ctx, api, id)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(display, s.header, s.invoices.QRPayload(id))
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.Warn("receipt print failed", zap.String("invoice_id", id), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	s.log.Info("receipt printed", zap.String("invoice_id", id), zap.String("printer", s.printer.Type()))
	return receipt, nil
}

// BuildReceipt lays out a reconciled bill for printing.
func BuildReceipt(d *entity.InvoiceDisplay, header entity.ReceiptHeader, qrPayload string) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        header,
		InvoiceNo:     d.Code,
		Date:          d.CreatedAt,
		Table:         d.TableName,
		PlayTime:      d.PlayTime,
		PaymentMethod: d.PaymentMethod,
		Items:         make([]entity.ReceiptItem, 0, len(d.Products)),
		PlayAmount:    d.PlayAmount.Value,
		ServiceAmount: d.ServiceAmount.Value,
		Surcharge:     d.Surcharge.Value,
		Discount:      d.TotalDiscount.Value,
		Total:         d.Total.Value,
		PaidLabel:     d.PaidLabel,
		QRPayload:     qrPayload,
	}
	if receipt.InvoiceNo == invoiceview.UnknownMarker && d.ID != invoiceview.UnknownMarker {
		receipt.InvoiceNo = utils.ShortID(d.ID)
	}
	if d.StaffName != invoiceview.UnknownMarker {
		receipt.Cashier = d.StaffName
	}
	if d.Paid && d.PaidAt != "" {
		receipt.Date = d.PaidAt
	}
	for _, p := range d.Products {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:     p.Name,
			Quantity: p.Quantity,
			Total:    p.Amount.Value,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("ĐT: " + r.Header.Phone)
	}
	doc.LineFeed().
		SetBold(true).
		Text("HÓA ĐƠN THANH TOÁN").
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Số HĐ:", r.InvoiceNo).
		KeyValue("Ngày:", r.Date).
		KeyValue("Bàn:", r.Table)
	if r.Cashier != "" {
		doc.KeyValue("Thu ngân:", r.Cashier)
	}
	if r.PlayTime != "" {
		doc.KeyValue("Giờ chơi:", r.PlayTime)
	}
	doc.Separator('-')

	if !r.PlayAmount.IsZero() {
		doc.ItemLine("1", invoiceview.PlayChargeLabel, money.FormatNumber(r.PlayAmount))
	}
	for _, item := range r.Items {
		doc.ItemLine(strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Name, money.FormatNumber(item.Total))
	}
	doc.Separator('-')

	if !r.ServiceAmount.IsZero() {
		doc.KeyValue("Phí dịch vụ:", money.Format(r.ServiceAmount))
	}
	if !r.Surcharge.IsZero() {
		doc.KeyValue("Phụ thu:", money.Format(r.Surcharge))
	}
	if !r.Discount.IsZero() {
		doc.KeyValue("Giảm giá:", "-"+money.Format(r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TỔNG CỘNG:", money.Format(r.Total)).
		SetBold(false)
	if r.PaymentMethod != "" {
		doc.KeyValue("Thanh toán:", r.PaymentMethod)
	}
	doc.KeyValue("Trạng thái:", r.PaidLabel)
	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter)
	if r.QRPayload != "" {
		doc.QRCode(r.QRPayload, 5).LineFeed()
	}
	doc.Text("Cảm ơn quý khách!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
