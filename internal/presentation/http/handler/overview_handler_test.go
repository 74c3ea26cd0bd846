package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func overviewRouter(t *testing.T) *gin.Engine {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bills", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", map[string]any{"items": []map[string]any{
			{"_id": "b1", "paid": true, "total": 120000, "paidAt": "2024-03-05T20:00:00", "items": []map[string]any{{"type": "play", "amount": 90000}}},
			{"_id": "b2", "paid": false, "total": 40000, "createdAt": "2024-03-06T10:00:00"},
			{"_id": "b3", "paid": true, "total": 70000, "paidAt": "2024-04-01T09:00:00"},
		}})
	})

	h := NewOverviewHandler(service.NewOverviewService(ict, zap.NewNop()))
	r := gin.New()
	r.Use(withSession(fakePOS(t, mux)))
	r.GET("/overview", h.GetOverview)
	r.GET("/overview/export", h.Export)
	return r
}

func TestOverviewHandler_GetOverview(t *testing.T) {
	w, resp := doRequest(t, overviewRouter(t), http.MethodGet, "/overview?range=custom&from=01/03/2024&to=31/03/2024", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var overview entity.RevenueOverview
	require.NoError(t, json.Unmarshal(resp.Data, &overview))
	assert.Equal(t, "01/03/2024", overview.From)
	assert.Equal(t, "31/03/2024", overview.To)
	assert.Equal(t, 2, overview.InvoiceCount)
	assert.Equal(t, 1, overview.PaidCount)
	assert.Equal(t, "120.000 đ", overview.Revenue.Text)
	assert.Equal(t, "90.000 đ", overview.PlayRevenue.Text)
}

func TestOverviewHandler_BadRange(t *testing.T) {
	router := overviewRouter(t)

	testCases := []struct {
		name   string
		target string
	}{
		{name: "unknown_preset", target: "/overview?range=decade"},
		{name: "unparseable_from", target: "/overview?range=custom&from=2024-03-01&to=31/03/2024"},
		{name: "to_before_from", target: "/overview?range=custom&from=31/03/2024&to=01/03/2024"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := doRequest(t, router, http.MethodGet, tc.target, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestOverviewHandler_Export(t *testing.T) {
	w, _ := doRequest(t, overviewRouter(t), http.MethodGet, "/overview/export?range=custom&from=01/03/2024&to=31/03/2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="doanh-thu_20240301_20240331.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.NotEmpty(t, f.GetSheetList())
}
