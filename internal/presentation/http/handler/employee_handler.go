package handler

import (
	"net/http"

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/request"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/bidacafe/pos-gateway/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles POS user account HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles listing employees
func (h *EmployeeHandler) List(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var filter request.EmployeeFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.employeeService.ListEmployees(c.Request.Context(), client, &service.ListEmployeesInput{
		Params:   pagination.PaginationParams{Page: filter.Page, Limit: filter.Limit},
		Search:   filter.Search,
		Role:     filter.Role,
		Active:   filter.Active,
		BranchID: filter.BranchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Employees retrieved successfully", result)
}

// Get handles getting an employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), client, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// Create handles creating an employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), client, &service.CreateEmployeeInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Active:   req.Active,
		BranchID: req.BranchID,
		Avatar:   req.Avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Update handles updating an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), client, &service.UpdateEmployeeInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Role:     req.Role,
		Active:   req.Active,
		BranchID: req.BranchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// ChangeRole handles promoting or demoting an employee
func (h *EmployeeHandler) ChangeRole(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Role must be admin or staff")
		return
	}

	employee, err := h.employeeService.ChangeRole(c.Request.Context(), client, c.Param("id"), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee role updated successfully", employee)
}

// SetActive handles locking or unlocking an account
func (h *EmployeeHandler) SetActive(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	employee, err := h.employeeService.SetActive(c.Request.Context(), client, c.Param("id"), *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee status updated successfully", employee)
}

// ResetPassword handles an admin resetting an employee's password
func (h *EmployeeHandler) ResetPassword(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.employeeService.ResetPassword(c.Request.Context(), client, c.Param("id"), req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

// Delete handles deleting an employee
func (h *EmployeeHandler) Delete(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), client, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}
