package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
	"github.com/bidacafe/pos-gateway/internal/domain/invoiceview"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/pkg/apperror"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	// DefaultRatePerHour applies when neither the table session nor the
	// payment carries a rate.
	DefaultRatePerHour = 40000
	defaultItemName    = "Sản phẩm"
	defaultQRSize      = 256
)

// InvoiceService serves the invoice screens from bills held by the POS API.
type InvoiceService struct {
	opts      invoiceview.Options
	qrBaseURL string
	log       *zap.Logger
	now       func() time.Time
}

// NewInvoiceService creates a new invoice service rendering times in loc.
func NewInvoiceService(loc *time.Location, qrBaseURL string, log *zap.Logger) *InvoiceService {
	if loc == nil {
		loc = time.Local
	}
	return &InvoiceService{
		opts:      invoiceview.Options{Location: loc},
		qrBaseURL: strings.TrimRight(qrBaseURL, "/"),
		log:       log.Named("invoice"),
		now:       time.Now,
	}
}

// List returns the invoice list for a tab and search query.
func (s *InvoiceService) List(ctx context.Context, api BillAPI, tab enum.InvoiceTab, query string) (*invoiceview.ListResult, error) {
	bills, err := api.ListBills(ctx)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	result := invoiceview.BuildList(bills, tab, query, s.opts)
	return &result, nil
}

// Get returns one reconciled invoice.
func (s *InvoiceService) Get(ctx context.Context, api BillAPI, id string) (*entity.InvoiceDisplay, error) {
	bill, err := api.GetBill(ctx, id)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	display := invoiceview.Reconcile(bill, s.opts)
	return &display, nil
}

// SessionItemInput is a product ordered during a table session.
type SessionItemInput struct {
	ProductID     string
	NameSnapshot  string
	PriceSnapshot float64
	Qty           float64
	Note          string
}

// TableSessionInput is the running table session being closed.
type TableSessionInput struct {
	ID          string
	TableID     string
	TableName   string
	AreaID      *string
	StartTime   *time.Time
	RatePerHour float64
	Staff       string
	Items       []SessionItemInput
}

// PaymentInput carries what the cashier entered when closing the table.
type PaymentInput struct {
	PaymentMethod string
	TableName     string
	StaffID       string
	Note          string
	RatePerHour   float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	Session TableSessionInput
	Payment PaymentInput
}

// BuildBillRequest turns a closing table session into a paid bill.
// Play time is billed per started hour; product amounts are price × qty.
func BuildBillRequest(input *CreateInvoiceInput, now time.Time) posapi.CreateBillRequest {
	session, payment := input.Session, input.Payment

	req := posapi.CreateBillRequest{
		Session:       session.ID,
		Table:         session.TableID,
		TableName:     firstNonEmpty(session.TableName, payment.TableName),
		AreaID:        session.AreaID,
		Items:         make([]posapi.BillItemRequest, 0, len(session.Items)+1),
		PaymentMethod: firstNonEmpty(payment.PaymentMethod, enum.PaymentMethodCash.String()),
		Paid:          true,
		PaidAt:        now.UTC(),
		Note:          payment.Note,
	}
	if staff := firstNonEmpty(payment.StaffID, session.Staff); staff != "" {
		req.Staff = &staff
	}

	if session.StartTime != nil {
		minutes := math.Floor(float64(now.Sub(*session.StartTime).Milliseconds()) / 60000)
		rate := firstNonZero(session.RatePerHour, payment.RatePerHour, DefaultRatePerHour)
		amount := math.Ceil(minutes/60) * rate
		if amount == 0 {
			amount = 0 // drop negative zero
		}
		req.Items = append(req.Items, posapi.BillItemRequest{
			Type:        entity.LineItemTypePlay,
			Minutes:     &minutes,
			RatePerHour: &rate,
			Amount:      amount,
			Note:        "Chơi bida " + formatFloat(math.Floor(minutes/60)) + "h" + formatFloat(math.Mod(minutes, 60)) + "m",
		})
	}

	for _, item := range session.Items {
		price, qty := item.PriceSnapshot, item.Qty
		req.Items = append(req.Items, posapi.BillItemRequest{
			Type:          entity.LineItemTypeProduct,
			ProductID:     item.ProductID,
			NameSnapshot:  firstNonEmpty(item.NameSnapshot, defaultItemName),
			PriceSnapshot: &price,
			Qty:           &qty,
			Amount:        price * qty,
			Note:          item.Note,
		})
	}
	return req
}

// CreateFromSession bills a closing table session and returns the stored bill.
func (s *InvoiceService) CreateFromSession(ctx context.Context, api BillAPI, input *CreateInvoiceInput) (*entity.InvoiceDisplay, error) {
	if input.Session.ID == "" || input.Session.TableID == "" {
		return nil, apperror.NewBadRequestError("Table session is required")
	}

	req := BuildBillRequest(input, s.now())
	bill, err := api.CreateBill(ctx, req)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}

	s.log.Info("bill created",
		zap.String("table_session", input.Session.ID),
		zap.Int("items", len(req.Items)),
		zap.String("payment_method", req.PaymentMethod),
	)

	display := invoiceview.Reconcile(bill, s.opts)
	return &display, nil
}

// Pay marks a bill as paid now.
func (s *InvoiceService) Pay(ctx context.Context, api BillAPI, id, paymentMethod string) (*entity.InvoiceDisplay, error) {
	method := firstNonEmpty(paymentMethod, enum.PaymentMethodCash.String())
	bill, err := api.PayBill(ctx, id, method, s.now())
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	display := invoiceview.Reconcile(bill, s.opts)
	return &display, nil
}

// QRPayload is the link encoded in an invoice's QR code.
func (s *InvoiceService) QRPayload(id string) string {
	return s.qrBaseURL + "/invoices/" + id
}

// QRCode renders a PNG QR code linking to the invoice. The bill must exist.
func (s *InvoiceService) QRCode(ctx context.Context, api BillAPI, id string, size int) ([]byte, error) {
	if _, err := api.GetBill(ctx, id); err != nil {
		return nil, apperror.FromUpstream(err)
	}
	if size <= 0 || size > 1024 {
		size = defaultQRSize
	}
	png, err := qrcode.Encode(s.QRPayload(id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: %w", err)
	}
	return png, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // drop negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
