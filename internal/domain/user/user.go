// Package user holds customer and admin account records managed from the
// back office.
package user

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailExists is returned when a create or update would reuse an
	// existing email address.
	ErrEmailExists = errors.New("email already registered")
)

// Role separates back-office staff from shoppers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Status gates whether an account may sign in.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// User is an account record. Credentials live with the auth provider; only
// profile data is stored here.
type User struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Status Status
}

// Repository defines admin CRUD over user records.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
