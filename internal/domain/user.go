package domain

import "time"

// User is a customer or administrator of the bank.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	FullName       string
	Email          string
	PhoneNumber    string
	Address        string
	Role           Role
	Enabled        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleCustomer owns accounts, loans and fixed deposits
	RoleCustomer Role = "CUSTOMER"

	// RoleAdmin approves accounts and loans and sees aggregate reports
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// IsAdmin reports whether the role may perform administrative actions.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
