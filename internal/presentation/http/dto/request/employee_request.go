package request

// EmployeeFilterRequest represents employee list filter parameters
type EmployeeFilterRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Active   *bool  `form:"active"`
	BranchID string `form:"branch_id"`
}

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=100"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin staff"`
	Active   *bool   `json:"active"`
	BranchID *string `json:"branch_id"`
	Avatar   *string `json:"avatar"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin staff"`
	Active   *bool   `json:"active"`
	BranchID *string `json:"branch_id"`
}

// ChangeRoleRequest represents a role change request
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin staff"`
}

// SetActiveRequest locks or unlocks an account
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ResetPasswordRequest represents an admin password reset
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
