package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateAccountState(_ context.Context, username string, enabled, locked bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Enabled = enabled
	u.Locked = locked
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

// put stores a user directly, bypassing registration.
func (r *stubUserRepo) put(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.Username] = cloneUser(u)
}

type stubLimiter struct {
	blocked  bool
	checkErr error
	failures []string
	resets   []string
}

func (l *stubLimiter) Check(_ context.Context, _, _ string) error {
	if l.blocked {
		return domain.ErrTooManyAttempts
	}
	return l.checkErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, username, _ string) error {
	l.failures = append(l.failures, username)
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username, _ string) error {
	l.resets = append(l.resets, username)
	return nil
}

type stubShoeRepo struct {
	shoes []*domain.Shoe
	err   error
}

func (r *stubShoeRepo) Create(_ context.Context, s *domain.Shoe) (*domain.Shoe, error) {
	r.shoes = append(r.shoes, s)
	return s, nil
}

func (r *stubShoeRepo) List(_ context.Context) ([]*domain.Shoe, error) {
	return r.shoes, r.err
}

type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) CreateBatch(_ context.Context, orders []*domain.Order) error {
	r.orders = append(r.orders, orders...)
	return nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	return r.orders, nil
}

type stubTransactionRepo struct {
	txs []*domain.Transaction
}

func (r *stubTransactionRepo) CreateBatch(_ context.Context, txs []*domain.Transaction) error {
	r.txs = append(r.txs, txs...)
	return nil
}

func (r *stubTransactionRepo) List(_ context.Context) ([]*domain.Transaction, error) {
	return r.txs, nil
}
