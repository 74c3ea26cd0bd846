package handler

import (
	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.OKWithWarning(c, "Test print completed (printer may be disabled)", receipt, err.Error())
		return
	}

	response.OK(c, "Test page sent to printer", receipt)
}

// PrintInvoice prints the receipt for a bill.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintInvoice(c.Request.Context(), client, c.Param("id"))
	if err != nil {
		// the bill was found but the printer failed; the app can still show the receipt
		if receipt != nil {
			response.OKWithWarning(c, "Receipt generated but printing failed", receipt, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}
