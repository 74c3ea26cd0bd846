package handler

import (
	"net/http"
	"strconv"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/request"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles the invoice list with its tab and search box
func (h *InvoiceHandler) List(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), client, enum.ParseInvoiceTab(filter.Tab), filter.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", result)
}

// Get handles getting a reconciled invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), client, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create bills a closing table session
func (h *InvoiceHandler) Create(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.CreateInvoiceInput{
		Session: service.TableSessionInput{
			ID:          req.Session.ID,
			TableID:     req.Session.TableID,
			TableName:   req.Session.TableName,
			AreaID:      req.Session.AreaID,
			StartTime:   req.Session.StartTime,
			RatePerHour: req.Session.RatePerHour,
			Staff:       req.Session.Staff,
			Items:       make([]service.SessionItemInput, 0, len(req.Session.Items)),
		},
		Payment: service.PaymentInput{
			PaymentMethod: req.Payment.PaymentMethod,
			TableName:     req.Payment.TableName,
			StaffID:       req.Payment.StaffID,
			Note:          req.Payment.Note,
			RatePerHour:   req.Payment.RatePerHour,
		},
	}
	for _, item := range req.Session.Items {
		input.Session.Items = append(input.Session.Items, service.SessionItemInput{
			ProductID:     item.ProductID,
			NameSnapshot:  item.NameSnapshot,
			PriceSnapshot: item.PriceSnapshot,
			Qty:           item.Qty,
			Note:          item.Note,
		})
	}

	invoice, err := h.invoiceService.CreateFromSession(c.Request.Context(), client, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Pay marks an open bill as paid
func (h *InvoiceHandler) Pay(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Pay(c.Request.Context(), client, c.Param("id"), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice paid successfully", invoice)
}

// QRCode returns a PNG QR code linking to the invoice
func (h *InvoiceHandler) QRCode(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	png, err := h.invoiceService.QRCode(c.Request.Context(), client, c.Param("id"), size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}
