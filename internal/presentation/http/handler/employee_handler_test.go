package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func employeeRouter(t *testing.T, mux *http.ServeMux) *gin.Engine {
	h := NewEmployeeHandler(service.NewEmployeeService(zap.NewNop()))
	r := gin.New()
	r.Use(withSession(fakePOS(t, mux)))
	r.GET("/employees", h.List)
	r.PATCH("/employees/:id/reset-password", h.ResetPassword)
	return r
}

func TestEmployeeHandler_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "staff", q.Get("role"))
		assert.Equal(t, "true", q.Get("active"))
		writeEnvelope(w, http.StatusOK, "", map[string]any{
			"items": []map[string]any{{"_id": "u2", "username": "thungan02", "role": "staff", "active": true}},
			"page":  2, "limit": 1, "total": 3,
		})
	})

	w, resp := doRequest(t, employeeRouter(t, mux), http.MethodGet, "/employees?page=2&limit=1&role=staff&active=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Items []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"items"`
		Pagination struct {
			CurrentPage int   `json:"current_page"`
			Total       int64 `json:"total"`
			TotalPages  int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u2", page.Items[0].ID)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestEmployeeHandler_ResetPassword_Mismatch(t *testing.T) {
	w, resp := doRequest(t, employeeRouter(t, http.NewServeMux()), http.MethodPatch, "/employees/u2/reset-password", map[string]any{
		"new_password": "secret1", "confirm_password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "ResetPasswordRequest.ConfirmPassword", resp.Errors[0].Field)
	assert.Equal(t, "must match NewPassword", resp.Errors[0].Message)
}
