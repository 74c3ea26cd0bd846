package entity

import (
	"encoding/json"
)

// Employee is a POS user account (cashier or admin).
type Employee struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Role        string  `json:"role"`
	Active      bool    `json:"active"`
	BranchID    *string `json:"branch_id"`
	Avatar      *string `json:"avatar"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
	LastLoginAt string  `json:"last_login_at,omitempty"`
}

// UnmarshalJSON reads the POS API user shape; the id falls back to `_id`.
func (e *Employee) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string  `json:"id"`
		MongoID     string  `json:"_id"`
		Username    string  `json:"username"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		Phone       string  `json:"phone"`
		Role        string  `json:"role"`
		Active      *bool   `json:"active"`
		BranchID    *string `json:"branchId"`
		Avatar      *string `json:"avatar"`
		CreatedAt   string  `json:"createdAt"`
		UpdatedAt   string  `json:"updatedAt"`
		LastLoginAt string  `json:"lastLoginAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Employee{
		ID:          raw.ID,
		Username:    raw.Username,
		Name:        raw.Name,
		Email:       raw.Email,
		Phone:       raw.Phone,
		Role:        raw.Role,
		Active:      raw.Active == nil || *raw.Active,
		BranchID:    raw.BranchID,
		Avatar:      raw.Avatar,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		LastLoginAt: raw.LastLoginAt,
	}
	if e.ID == "" {
		e.ID = raw.MongoID
	}
	return nil
}

// DisplayName returns the name, falling back to the username.
func (e Employee) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Username
}
