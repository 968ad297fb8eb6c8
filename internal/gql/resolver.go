// Package gql implements the GraphQL surface: schema declaration,
// resolver layer and the error taxonomy surfaced to clients.
package gql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	graphql "github.com/graph-gophers/graphql-go"

	"staffhub.dev/internal/auth"
	"staffhub.dev/internal/store"
)

const minSalary = 1000

// Resolver is the root resolver behind both Query and Mutation. It owns
// no state beyond the injected store and token issuer.
type Resolver struct {
	store  store.Store
	tokens *auth.Tokens
}

// NewResolver wires the resolver layer to its collaborators.
func NewResolver(st store.Store, tokens *auth.Tokens) *Resolver {
	return &Resolver{store: st, tokens: tokens}
}

// requireAccount enforces the single authorization rule: a verified
// identity must be present in the request context before any store access.
func requireAccount(ctx context.Context) error {
	if _, ok := auth.AccountIDFromContext(ctx); !ok {
		return errUnauthorized()
	}
	return nil
}

// --- Authentication ---

// SignupInput mirrors the SignupInput declaration in the schema.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (r *Resolver) Signup(ctx context.Context, args struct{ Input SignupInput }) (*AuthPayloadResolver, error) {
	in := args.Input
	if len(in.Username) < 3 {
		return nil, validationError("Username must be at least 3 characters.")
	}
	if !govalidator.IsEmail(in.Email) {
		return nil, validationError("Invalid email format.")
	}
	if len(in.Password) < 6 {
		return nil, validationError("Password must be at least 6 characters.")
	}

	accounts := r.store.Accounts()
	switch _, err := accounts.FindByUsername(ctx, in.Username); {
	case err == nil:
		return nil, conflictError("User already exists with provided username/email")
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing username: %w", err)
	}
	switch _, err := accounts.FindByEmail(ctx, in.Email); {
	case err == nil:
		return nil, conflictError("User already exists with provided username/email")
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &store.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflictError("User already exists with provided username/email")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return r.authPayload(account)
}

func (r *Resolver) Login(ctx context.Context, args struct {
	UsernameOrEmail string
	Password        string
}) (*AuthPayloadResolver, error) {
	accounts := r.store.Accounts()

	account, err := accounts.FindByUsername(ctx, args.UsernameOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		account, err = accounts.FindByEmail(ctx, args.UsernameOrEmail)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := auth.VerifyPassword(account.PasswordHash, args.Password); err != nil {
		return nil, authError("Invalid password")
	}

	return r.authPayload(account)
}

func (r *Resolver) authPayload(account *store.Account) (*AuthPayloadResolver, error) {
	token, _, err := r.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthPayloadResolver{token: token, account: account}, nil
}

// --- Employee CRUD ---

func (r *Resolver) GetAllEmployees(ctx context.Context) ([]*EmployeeResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}
	employees, err := r.store.Employees().List(ctx, store.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return wrapEmployees(employees), nil
}

func (r *Resolver) GetEmployeeByID(ctx context.Context, args struct{ Eid graphql.ID }) (*EmployeeResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}
	employee, err := r.store.Employees().FindByID(ctx, string(args.Eid))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError("Employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &EmployeeResolver{e: employee}, nil
}

func (r *Resolver) SearchEmployees(ctx context.Context, args struct {
	Designation *string
	Department  *string
}) ([]*EmployeeResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}

	var filter store.EmployeeFilter
	if args.Designation != nil {
		filter.Designation = *args.Designation
	}
	if args.Department != nil {
		filter.Department = *args.Department
	}

	employees, err := r.store.Employees().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return wrapEmployees(employees), nil
}

// AddEmployeeInput mirrors the AddEmployeeInput declaration in the schema.
type AddEmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Gender        string
	Designation   string
	Salary        float64
	DateOfJoining *DateTime
	Department    string
	EmployeePhoto *string
}

func (r *Resolver) AddEmployee(ctx context.Context, args struct{ Input AddEmployeeInput }) (*EmployeeResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}

	in := args.Input
	if !govalidator.IsEmail(in.Email) {
		return nil, validationError("Invalid email format.")
	}
	if in.Salary < minSalary {
		return nil, validationError("Salary must be at least %d.", minSalary)
	}
	if !store.ValidGender(in.Gender) {
		return nil, validationError("Invalid gender.")
	}

	employees := r.store.Employees()
	switch _, err := employees.FindByEmail(ctx, in.Email); {
	case err == nil:
		return nil, conflictError("Employee with this email already exists.")
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing employee: %w", err)
	}

	now := time.Now().UTC()
	employee := &store.Employee{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Gender:        in.Gender,
		Designation:   in.Designation,
		Salary:        in.Salary,
		DateOfJoining: now,
		Department:    in.Department,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.DateOfJoining != nil {
		employee.DateOfJoining = in.DateOfJoining.Time
	}
	if in.EmployeePhoto != nil {
		employee.EmployeePhoto = *in.EmployeePhoto
	}

	if err := employees.Create(ctx, employee); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflictError("Employee with this email already exists.")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &EmployeeResolver{e: employee}, nil
}

// UpdateEmployeeInput mirrors the UpdateEmployeeInput declaration in the
// schema; nil fields were absent from the request.
type UpdateEmployeeInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *DateTime
	Department    *string
	EmployeePhoto *string
}

// validate applies the addEmployee rules to the fields that are present.
func (in *UpdateEmployeeInput) validate() error {
	if in.Email != nil && !govalidator.IsEmail(*in.Email) {
		return validationError("Invalid email format.")
	}
	if in.Salary != nil && *in.Salary < minSalary {
		return validationError("Salary must be at least %d.", minSalary)
	}
	if in.Gender != nil && !store.ValidGender(*in.Gender) {
		return validationError("Invalid gender.")
	}
	return nil
}

// apply merges the present fields onto e, leaving the rest untouched.
func (in *UpdateEmployeeInput) apply(e *store.Employee) {
	if in.FirstName != nil {
		e.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		e.LastName = *in.LastName
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Gender != nil {
		e.Gender = *in.Gender
	}
	if in.Designation != nil {
		e.Designation = *in.Designation
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	if in.DateOfJoining != nil {
		e.DateOfJoining = in.DateOfJoining.Time
	}
	if in.Department != nil {
		e.Department = *in.Department
	}
	if in.EmployeePhoto != nil {
		e.EmployeePhoto = *in.EmployeePhoto
	}
}

func (r *Resolver) UpdateEmployee(ctx context.Context, args struct {
	Eid   graphql.ID
	Input UpdateEmployeeInput
}) (*EmployeeResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}
	if err := args.Input.validate(); err != nil {
		return nil, err
	}

	employees := r.store.Employees()
	employee, err := employees.FindByID(ctx, string(args.Eid))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError("Employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}

	args.Input.apply(employee)
	employee.UpdatedAt = time.Now().UTC()

	if err := employees.Update(ctx, employee); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, notFoundError("Employee not found")
		case errors.Is(err, store.ErrDuplicate):
			return nil, conflictError("Employee with this email already exists.")
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return &EmployeeResolver{e: employee}, nil
}

func (r *Resolver) DeleteEmployee(ctx context.Context, args struct{ Eid graphql.ID }) (*DeleteResponseResolver, error) {
	if err := requireAccount(ctx); err != nil {
		return nil, err
	}
	if err := r.store.Employees().Delete(ctx, string(args.Eid)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("Employee not found")
		}
		return nil, fmt.Errorf("delete employee: %w", err)
	}
	return &DeleteResponseResolver{success: true, message: "Employee deleted successfully"}, nil
}

// --- Output resolvers ---

// AuthPayloadResolver shapes signup/login results.
type AuthPayloadResolver struct {
	token   string
	account *store.Account
}

func (p *AuthPayloadResolver) Token() string       { return p.token }
func (p *AuthPayloadResolver) User() *UserResolver { return &UserResolver{a: p.account} }

// UserResolver exposes an account without its password hash.
type UserResolver struct {
	a *store.Account
}

func (u *UserResolver) ID() graphql.ID       { return graphql.ID(u.a.ID) }
func (u *UserResolver) Username() string     { return u.a.Username }
func (u *UserResolver) Email() string        { return u.a.Email }
func (u *UserResolver) CreatedAt() *DateTime { return &DateTime{u.a.CreatedAt} }
func (u *UserResolver) UpdatedAt() *DateTime { return &DateTime{u.a.UpdatedAt} }

// EmployeeResolver maps a stored employee to the output shape; the
// internal identifier is exposed as eid.
type EmployeeResolver struct {
	e *store.Employee
}

func (r *EmployeeResolver) Eid() graphql.ID         { return graphql.ID(r.e.ID) }
func (r *EmployeeResolver) FirstName() string       { return r.e.FirstName }
func (r *EmployeeResolver) LastName() string        { return r.e.LastName }
func (r *EmployeeResolver) Email() string           { return r.e.Email }
func (r *EmployeeResolver) Gender() string          { return r.e.Gender }
func (r *EmployeeResolver) Designation() string     { return r.e.Designation }
func (r *EmployeeResolver) Salary() float64         { return r.e.Salary }
func (r *EmployeeResolver) DateOfJoining() DateTime { return DateTime{r.e.DateOfJoining} }
func (r *EmployeeResolver) Department() string      { return r.e.Department }
func (r *EmployeeResolver) CreatedAt() *DateTime    { return &DateTime{r.e.CreatedAt} }
func (r *EmployeeResolver) UpdatedAt() *DateTime    { return &DateTime{r.e.UpdatedAt} }

func (r *EmployeeResolver) EmployeePhoto() *string {
	photo := r.e.EmployeePhoto
	return &photo
}

func wrapEmployees(employees []*store.Employee) []*EmployeeResolver {
	out := make([]*EmployeeResolver, 0, len(employees))
	for _, e := range employees {
		out = append(out, &EmployeeResolver{e: e})
	}
	return out
}

// DeleteResponseResolver acknowledges a hard delete.
type DeleteResponseResolver struct {
	success bool
	message string
}

func (r *DeleteResponseResolver) Success() bool   { return r.success }
func (r *DeleteResponseResolver) Message() string { return r.message }
