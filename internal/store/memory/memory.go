// Package memory implements store.Store in process memory. It backs the
// resolver and HTTP tests and mirrors the uniqueness guarantees the
// Mongo indexes provide in production.
package memory

import (
	"context"
	"sync"

	"staffhub.dev/internal/ids"
	"staffhub.dev/internal/store"
)

// Store holds all records behind one RWMutex; safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*store.Account
	employees map[string]*store.Employee
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:  make(map[string]*store.Account),
		employees: make(map[string]*store.Employee),
	}
}

func (s *Store) Accounts() store.AccountStore   { return (*accountStore)(s) }
func (s *Store) Employees() store.EmployeeStore { return (*employeeStore)(s) }

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

type accountStore Store

func (s *accountStore) Create(ctx context.Context, a *store.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = ids.New()
	}
	cp := *a
	s.accounts[a.ID] = &cp
	return nil
}

func (s *accountStore) FindByUsername(ctx context.Context, username string) (*store.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *accountStore) FindByEmail(ctx context.Context, email string) (*store.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

type employeeStore Store

func (s *employeeStore) Create(ctx context.Context, e *store.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees {
		if existing.Email == e.Email {
			return store.ErrDuplicate
		}
	}
	if e.ID == "" {
		e.ID = ids.New()
	}
	cp := *e
	s.employees[e.ID] = &cp
	return nil
}

func (s *employeeStore) FindByID(ctx context.Context, id string) (*store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *employeeStore) FindByEmail(ctx context.Context, email string) (*store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *employeeStore) List(ctx context.Context, filter store.EmployeeFilter) ([]*store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*store.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.Designation != "" && e.Designation != filter.Designation {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (s *employeeStore) Update(ctx context.Context, e *store.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.employees {
		if id != e.ID && existing.Email == e.Email {
			return store.ErrDuplicate
		}
	}
	cp := *e
	s.employees[e.ID] = &cp
	return nil
}

func (s *employeeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}
