package users

import "errors"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrAdminUndeletable   = errors.New("cannot delete admin accounts")
)

type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Status     Status `json:"status"`
	SignupDate string `json:"signupDate,omitempty"`
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
