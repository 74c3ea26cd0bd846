package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/pkg/printer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPrinter struct {
	jobs int
	err  error
}

func (p *stubPrinter) Print(context.Context, []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs++
	return nil
}

func (p *stubPrinter) IsConnected(context.Context) bool { return p.err == nil }
func (p *stubPrinter) Type() string                     { return printer.TypeNetwork }

func printerRouter(t *testing.T, p printer.Printer) *gin.Engine {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bills/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "b1" {
			writeEnvelope(w, http.StatusNotFound, "Bill not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "", map[string]any{
			"_id": "b1", "code": "HD001", "paid": true, "total": 45000,
			"items": []map[string]any{{"type": "product", "nameSnapshot": "Sting", "qty": 3, "amount": 45000}},
		})
	})

	invoices := service.NewInvoiceService(ict, "https://pos.example.vn", zap.NewNop())
	header := entity.ReceiptHeader{StoreName: "Bida Café"}
	h := NewPrinterHandler(service.NewPrinterService(p, printer.Width58mm, header, invoices, zap.NewNop()))

	r := gin.New()
	r.Use(withSession(fakePOS(t, mux)))
	r.GET("/printer/status", h.GetStatus)
	r.POST("/printer/test", h.TestPrint)
	r.POST("/invoices/:id/print", h.PrintInvoice)
	return r
}

func TestPrinterHandler_PrintInvoice(t *testing.T) {
	p := &stubPrinter{}
	w, resp := doRequest(t, printerRouter(t, p), http.MethodPost, "/invoices/b1/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Receipt printed successfully", resp.Message)
	assert.Equal(t, 1, p.jobs)

	var receipt entity.Receipt
	require.NoError(t, json.Unmarshal(resp.Data, &receipt))
	assert.Equal(t, "HD001", receipt.InvoiceNo)
	assert.Empty(t, resp.Warning)
}

func TestPrinterHandler_PrintInvoice_PrinterOffline(t *testing.T) {
	p := &stubPrinter{err: errors.New("dial tcp 192.168.1.50:9100: connection refused")}
	w, resp := doRequest(t, printerRouter(t, p), http.MethodPost, "/invoices/b1/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Receipt generated but printing failed", resp.Message)

	var receipt entity.Receipt
	require.NoError(t, json.Unmarshal(resp.Data, &receipt))
	assert.Equal(t, "HD001", receipt.InvoiceNo)
	assert.Contains(t, resp.Warning, "connection refused")
}

func TestPrinterHandler_PrintInvoice_MissingBill(t *testing.T) {
	p := &stubPrinter{}
	w, resp := doRequest(t, printerRouter(t, p), http.MethodPost, "/invoices/nope/print", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bill not found", resp.Message)
	assert.Zero(t, p.jobs)
}

func TestPrinterHandler_Status(t *testing.T) {
	w, resp := doRequest(t, printerRouter(t, &stubPrinter{}), http.MethodGet, "/printer/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status service.PrinterStatus
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, service.PrinterStatus{Configured: true, Connected: true, Type: printer.TypeNetwork, Width: printer.Width58mm}, status)
}

func TestPrinterHandler_TestPrint(t *testing.T) {
	w, resp := doRequest(t, printerRouter(t, &stubPrinter{err: errors.New("paper out")}), http.MethodPost, "/printer/test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var receipt entity.Receipt
	require.NoError(t, json.Unmarshal(resp.Data, &receipt))
	assert.Equal(t, "TEST-001", receipt.InvoiceNo)
	assert.Contains(t, resp.Warning, "paper out")
}
