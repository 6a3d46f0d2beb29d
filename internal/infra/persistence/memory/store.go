// Package memory keeps every collection in process memory. It backs the
// "memory" database driver used for local development and the test suites.
package memory

import (
	"sync"
	"time"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domtx "example.com/softuni-fest/internal/domain/transaction"
	domuser "example.com/softuni-fest/internal/domain/user"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]*domuser.User
	businesses   map[int64]*dombusiness.Business
	products     map[int64]*domproduct.Product
	transactions []*domtx.Transaction

	nextBusinessID    int64
	nextProductID     int64
	nextTransactionID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:             make(map[string]*domuser.User),
		businesses:        make(map[int64]*dombusiness.Business),
		products:          make(map[int64]*domproduct.Product),
		nextBusinessID:    1,
		nextProductID:     1,
		nextTransactionID: 1,
		now:               time.Now,
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Businesses() *BusinessRepository { return &BusinessRepository{s: s} }

func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s: s} }

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
