package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub.dev/internal/store"
)

func newEmployee(email, designation, department string) *store.Employee {
	now := time.Now().UTC()
	return &store.Employee{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         email,
		Gender:        store.GenderFemale,
		Designation:   designation,
		Salary:        5000,
		DateOfJoining: now,
		Department:    department,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestAccountUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := &store.Account{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}
	if err := s.Accounts().Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected assigned id")
	}

	dupUsername := &store.Account{Username: "alice", Email: "other@x.com"}
	if err := s.Accounts().Create(ctx, dupUsername); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for username, got %v", err)
	}
	dupEmail := &store.Account{Username: "bob", Email: "alice@x.com"}
	if err := s.Accounts().Create(ctx, dupEmail); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for email, got %v", err)
	}

	found, err := s.Accounts().FindByUsername(ctx, "alice")
	if err != nil || found.Email != "alice@x.com" {
		t.Fatalf("FindByUsername: %v, %+v", err, found)
	}
	if _, err := s.Accounts().FindByEmail(ctx, "nobody@x.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := newEmployee("ada@x.com", "Engineer", "R&D")
	if err := s.Employees().Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := newEmployee("ada@x.com", "Manager", "Sales")
	if err := s.Employees().Create(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := s.Employees().FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	got.FirstName = "mutated"
	again, _ := s.Employees().FindByID(ctx, e.ID)
	if again.FirstName != "Ada" {
		t.Fatalf("store leaked internal pointer")
	}

	got, err = s.Employees().FindByEmail(ctx, "ada@x.com")
	if err != nil || got.ID != e.ID {
		t.Fatalf("FindByEmail: %v, %+v", err, got)
	}

	e.Designation = "Staff Engineer"
	if err := s.Employees().Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = s.Employees().FindByID(ctx, e.ID)
	if got.Designation != "Staff Engineer" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := s.Employees().Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Employees().Delete(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.Employees().FindByID(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestEmployeeUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := newEmployee("first@x.com", "Engineer", "R&D")
	second := newEmployee("second@x.com", "Engineer", "R&D")
	if err := s.Employees().Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Employees().Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second.Email = "first@x.com"
	if err := s.Employees().Update(ctx, second); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	ghost := newEmployee("ghost@x.com", "Engineer", "R&D")
	ghost.ID = "missing"
	if err := s.Employees().Update(ctx, ghost); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeListFilter(t *testing.T) {
	ctx := context.Background()
	s := New()

	seed := []*store.Employee{
		newEmployee("a@x.com", "Engineer", "R&D"),
		newEmployee("b@x.com", "Engineer", "Platform"),
		newEmployee("c@x.com", "Manager", "R&D"),
	}
	for _, e := range seed {
		if err := s.Employees().Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := s.Employees().List(ctx, store.EmployeeFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("List all: %v, n=%d", err, len(all))
	}

	engineers, _ := s.Employees().List(ctx, store.EmployeeFilter{Designation: "Engineer"})
	if len(engineers) != 2 {
		t.Fatalf("expected 2 engineers, got %d", len(engineers))
	}

	rnd, _ := s.Employees().List(ctx, store.EmployeeFilter{Designation: "Engineer", Department: "R&D"})
	if len(rnd) != 1 || rnd[0].Email != "a@x.com" {
		t.Fatalf("combined filter mismatch: %+v", rnd)
	}

	none, _ := s.Employees().List(ctx, store.EmployeeFilter{Department: "Finance"})
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %d", len(none))
	}
}
