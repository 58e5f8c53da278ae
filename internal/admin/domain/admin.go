package domain

import (
	"errors"
	"time"
)

// Account is an admin credential record. Accounts are created, rotated, and
// removed only as a side effect of organization lifecycle operations; every
// account owns at most one organization.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
)

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return nil
}
