package service

import (
	"context"
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/enum"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/pkg/apperror"
	"github.com/bidacafe/pos-gateway/pkg/pagination"
	"go.uber.org/zap"
)

// EmployeeService manages POS user accounts.
type EmployeeService struct {
	log *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(log *zap.Logger) *EmployeeService {
	return &EmployeeService{log: log.Named("employee")}
}

// ListEmployeesInput represents the list employees input
type ListEmployeesInput struct {
	Params   pagination.PaginationParams
	Search   string
	Role     string
	Active   *bool
	BranchID string
}

// ListEmployees returns one page of accounts. Unknown roles are not sent as a filter.
func (s *EmployeeService) ListEmployees(ctx context.Context, api UserAPI, input *ListEmployeesInput) (*pagination.PaginatedResult[entity.Employee], error) {
	params := input.Params
	params.Validate()

	filter := posapi.UserFilter{
		Page:     params.Page,
		Limit:    params.Limit,
		Search:   input.Search,
		Active:   input.Active,
		BranchID: input.BranchID,
	}
	if role := enum.ParseEmployeeRole(input.Role); role.Valid() {
		filter.Role = role.String()
	}

	page, err := api.ListUsers(ctx, filter)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}

	current, limit := page.Page, page.Limit
	if current <= 0 {
		current = params.Page
	}
	if limit <= 0 {
		limit = params.Limit
	}
	total := int64(page.Total)
	if total < int64(len(page.Items)) {
		total = int64(len(page.Items))
	}
	return pagination.NewPaginatedResult(page.Items, pagination.NewPagination(current, limit, total)), nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, api UserAPI, id string) (*entity.Employee, error) {
	user, err := api.GetUser(ctx, id)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	return user, nil
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Phone    *string
	Role     string
	Active   *bool
	BranchID *string
	Avatar   *string
}

// CreateEmployee opens a new account. Role defaults to staff and the account
// starts active.
func (s *EmployeeService) CreateEmployee(ctx context.Context, api UserAPI, input *CreateEmployeeInput) (*entity.Employee, error) {
	req := posapi.CreateUserRequest{
		Username: strings.TrimSpace(input.Username),
		Password: input.Password,
		Name:     strings.TrimSpace(input.Name),
		Phone:    input.Phone,
		Role:     enum.EmployeeRoleStaff.String(),
		Active:   true,
		BranchID: input.BranchID,
		Avatar:   input.Avatar,
	}
	if input.Email != "" {
		email := strings.TrimSpace(input.Email)
		req.Email = &email
	}
	if input.Role != "" {
		role := enum.ParseEmployeeRole(input.Role)
		if !role.Valid() {
			return nil, apperror.NewBadRequestError("Role must be admin or staff")
		}
		req.Role = role.String()
	}
	if input.Active != nil {
		req.Active = *input.Active
	}

	user, err := api.CreateUser(ctx, req)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	s.log.Info("employee created", zap.String("employee_id", user.ID), zap.String("username", req.Username))
	return user, nil
}

// UpdateEmployeeInput represents the update employee input. Nil fields are
// left unchanged, except Avatar which is cleared when nil.
type UpdateEmployeeInput struct {
	ID       string
	Name     *string
	Email    *string
	Phone    *string
	Avatar   *string
	Role     *string
	Active   *bool
	BranchID *string
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, api UserAPI, input *UpdateEmployeeInput) (*entity.Employee, error) {
	req := posapi.UpdateUserRequest{
		Phone:    input.Phone,
		Avatar:   input.Avatar,
		Active:   input.Active,
		BranchID: input.BranchID,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		req.Name = &name
	}
	if input.Email != nil && *input.Email != "" {
		email := strings.TrimSpace(*input.Email)
		req.Email = &email
	}
	if input.Role != nil {
		role := enum.ParseEmployeeRole(*input.Role)
		if !role.Valid() {
			return nil, apperror.NewBadRequestError("Role must be admin or staff")
		}
		value := role.String()
		req.Role = &value
	}

	user, err := api.UpdateUser(ctx, input.ID, req)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	return user, nil
}

func (s *EmployeeService) ChangeRole(ctx context.Context, api UserAPI, id, role string) (*entity.Employee, error) {
	parsed := enum.ParseEmployeeRole(role)
	if !parsed.Valid() {
		return nil, apperror.NewBadRequestError("Role must be admin or staff")
	}
	user, err := api.ChangeUserRole(ctx, id, parsed.String())
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	s.log.Info("employee role changed", zap.String("employee_id", id), zap.String("role", parsed.String()))
	return user, nil
}

func (s *EmployeeService) SetActive(ctx context.Context, api UserAPI, id string, active bool) (*entity.Employee, error) {
	user, err := api.SetUserActive(ctx, id, active)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	return user, nil
}

func (s *EmployeeService) ResetPassword(ctx context.Context, api UserAPI, id, newPassword string) error {
	if err := api.ResetUserPassword(ctx, id, newPassword); err != nil {
		return apperror.FromUpstream(err)
	}
	s.log.Info("employee password reset", zap.String("employee_id", id))
	return nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, api UserAPI, id string) error {
	if err := api.DeleteUser(ctx, id); err != nil {
		return apperror.FromUpstream(err)
	}
	s.log.Info("employee deleted", zap.String("employee_id", id))
	return nil
}
