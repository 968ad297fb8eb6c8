// Package store defines the persisted record shapes and the persistence
// gateway contract consumed by the resolver layer. Two implementations
// exist: mongodb (production) and memory (tests, local runs).
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: already exists")
)

// Account is a registered user capable of obtaining a bearer token.
// PasswordHash is a bcrypt hash; plaintext is never persisted.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Employee is the managed personnel record under CRUD.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Gender        string
	Designation   string
	Salary        float64
	DateOfJoining time.Time
	Department    string
	EmployeePhoto string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Gender values accepted for Employee records.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// ValidGender reports whether g is one of the enumerated gender values.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// EmployeeFilter selects employees by exact match on the non-empty
// fields. The zero filter matches everything.
type EmployeeFilter struct {
	Designation string
	Department  string
}

// AccountStore manages account records. Create returns ErrDuplicate when
// the username or email is already taken.
type AccountStore interface {
	Create(ctx context.Context, a *Account) error
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// EmployeeStore manages employee records. Create and Update return
// ErrDuplicate when the email is used by another employee; lookups and
// Delete return ErrNotFound when no record matches.
type EmployeeStore interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
}

// Store is the persistence gateway handed to the resolver layer.
type Store interface {
	Accounts() AccountStore
	Employees() EmployeeStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
