package models

import "time"

// Roles a user can hold. Registration only accepts Employer and Employee;
// Admin accounts are provisioned out of band.
const (
	RoleEmployer = "Employer"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleEmployer || role == RoleEmployee || role == RoleAdmin
}

// RegistrableRole reports whether role may be chosen at registration.
func RegistrableRole(role string) bool {
	return role == RoleEmployer || role == RoleEmployee
}

// User is an account on the platform.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Name         string    `json:"name,omitempty"`
	Surname      string    `json:"surname,omitempty"`
	Age          *int      `json:"age,omitempty"`
	Residence    string    `json:"residence,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity derived from a verified token.
// It carries claim snapshots only, never a live User reference.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
