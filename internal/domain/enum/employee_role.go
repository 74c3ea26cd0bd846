package enum

import (
	"encoding/json"
	"strings"
)

// EmployeeRole is the role of a POS user account
type EmployeeRole int

const (
	EmployeeRoleUnknown EmployeeRole = 0
	EmployeeRoleStaff   EmployeeRole = 1
	EmployeeRoleAdmin   EmployeeRole = 2
)

func (r EmployeeRole) String() string {
	switch r {
	case EmployeeRoleStaff:
		return "staff"
	case EmployeeRoleAdmin:
		return "admin"
	default:
		return ""
	}
}

// Valid reports whether the role is one the POS API accepts.
func (r EmployeeRole) Valid() bool {
	return r == EmployeeRoleStaff || r == EmployeeRoleAdmin
}

func (r EmployeeRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *EmployeeRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = ParseEmployeeRole(str)
	return nil
}

// ParseEmployeeRole accepts "admin" and "staff"; anything else is unknown.
func ParseEmployeeRole(s string) EmployeeRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return EmployeeRoleAdmin
	case "staff":
		return EmployeeRoleStaff
	default:
		return EmployeeRoleUnknown
	}
}
