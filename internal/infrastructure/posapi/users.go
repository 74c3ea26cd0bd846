package posapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
)

// UserFilter narrows GET /users. Zero values are not sent.
type UserFilter struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	Active   *bool
	BranchID string
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
	Active   bool    `json:"active"`
	BranchID *string `json:"branchId"`
	Avatar   *string `json:"avatar"`
}

// UpdateUserRequest is the body of PUT /users/:id. Avatar is always sent,
// null clearing it.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	BranchID *string `json:"branchId,omitempty"`
}

func (f UserFilter) values() url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(f.Page))
	query.Set("limit", strconv.Itoa(f.Limit))
	if q := strings.TrimSpace(f.Search); q != "" {
		query.Set("q", q)
	}
	if f.Role == "admin" || f.Role == "staff" {
		query.Set("role", f.Role)
	}
	if f.Active != nil {
		query.Set("active", strconv.FormatBool(*f.Active))
	}
	if f.BranchID != "" {
		query.Set("branchId", f.BranchID)
	}
	return query
}

// ListUsers returns one page of POS accounts.
func (c *Client) ListUsers(ctx context.Context, filter UserFilter) (Page[entity.Employee], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	var data json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/users", filter.values(), nil, &data); err != nil {
		return Page[entity.Employee]{}, err
	}
	return decodePage[entity.Employee](data)
}

func (c *Client) GetUser(ctx context.Context, id string) (*entity.Employee, error) {
	return c.userCall(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*entity.Employee, error) {
	return c.userCall(ctx, http.MethodPost, "/users", req)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*entity.Employee, error) {
	return c.userCall(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req)
}

func (c *Client) ChangeUserRole(ctx context.Context, id, role string) (*entity.Employee, error) {
	return c.userCall(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/role", map[string]string{"role": role})
}

func (c *Client) SetUserActive(ctx context.Context, id string, active bool) (*entity.Employee, error) {
	return c.userCall(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/active", map[string]bool{"active": active})
}

// ResetUserPassword sets a new password; the POS API also wants the confirmation.
func (c *Client) ResetUserPassword(ctx context.Context, id, newPassword string) error {
	body := map[string]string{
		"newPassword":        newPassword,
		"confirmNewPassword": newPassword,
	}
	_, err := c.doJSON(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/reset-password", nil, body, nil)
	return err
}

// DeleteUser removes an account. Both 200 and 204 count as success.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	status, err := c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return &Error{StatusCode: status, Message: "Unexpected delete status", Method: http.MethodDelete, Path: "/users/" + id}
	}
	return nil
}

func (c *Client) userCall(ctx context.Context, method, path string, body any) (*entity.Employee, error) {
	var user entity.Employee
	if _, err := c.doJSON(ctx, method, path, nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
