package store

import (
	"context"
	"sync"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

// Memory is an in-memory service.Store. It backs the test suite and the
// server when no database DSN is configured. One mutex serializes every
// write, which also gives Atomically its all-or-nothing behaviour: the
// state is snapshotted on entry and restored when the closure fails.
//
// Accounts and transactions live in slices so insertion order falls out
// for free.
type Memory struct {
	mu       sync.Mutex
	users    map[string]models.User
	accounts []models.BankAccount
	txns     []models.Transaction

	// FailTransactionCreate, when set, makes the next transaction insert
	// fail with it. Used by tests to prove the balance write rolls back.
	FailTransactionCreate error
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

func (m *Memory) Users() service.UserRepository               { return &memUsers{m: m, lock: true} }
func (m *Memory) Accounts() service.AccountRepository         { return &memAccounts{m: m, lock: true} }
func (m *Memory) Transactions() service.TransactionRepository { return &memTxns{m: m, lock: true} }

func (m *Memory) Atomically(ctx context.Context, fn func(service.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, accounts, txns := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.users, m.accounts, m.txns = users, accounts, txns
		return err
	}
	return nil
}

func (m *Memory) snapshot() (map[string]models.User, []models.BankAccount, []models.Transaction) {
	users := make(map[string]models.User, len(m.users))
	for id, u := range m.users {
		users[id] = u
	}
	accounts := append([]models.BankAccount(nil), m.accounts...)
	txns := append([]models.Transaction(nil), m.txns...)
	return users, accounts, txns
}

// memTx is the same store with locking elided: Atomically already holds
// the mutex for the whole closure. Nested Atomically joins the outer
// transaction rather than deadlocking on the mutex.
type memTx struct {
	m *Memory
}

func (t *memTx) Users() service.UserRepository               { return &memUsers{m: t.m} }
func (t *memTx) Accounts() service.AccountRepository         { return &memAccounts{m: t.m} }
func (t *memTx) Transactions() service.TransactionRepository { return &memTxns{m: t.m} }

func (t *memTx) Atomically(ctx context.Context, fn func(service.Store) error) error {
	return fn(t)
}

type memUsers struct {
	m    *Memory
	lock bool
}

func (r *memUsers) Create(ctx context.Context, user *models.User) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r *memUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	for _, u := range r.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, service.ErrNotFound
}

func (r *memUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.ByEmail(ctx, email)
	if err == service.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *memUsers) Update(ctx context.Context, user *models.User) error {
	return r.Create(ctx, user)
}

func (r *memUsers) Delete(ctx context.Context, id string) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	delete(r.m.users, id)
	return nil
}

type memAccounts struct {
	m    *Memory
	lock bool
}

func (r *memAccounts) Create(ctx context.Context, account *models.BankAccount) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	r.m.accounts = append(r.m.accounts, *account)
	return nil
}

func (r *memAccounts) find(number string) (int, bool) {
	for i, a := range r.m.accounts {
		if a.AccountNumber == number {
			return i, true
		}
	}
	return 0, false
}

func (r *memAccounts) ByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	i, ok := r.find(number)
	if !ok || r.m.accounts[i].OwnerID != ownerID {
		return nil, service.ErrNotFound
	}
	account := r.m.accounts[i]
	return &account, nil
}

// LockByNumberAndOwner needs no extra locking here: inside Atomically the
// store mutex already excludes every other caller.
func (r *memAccounts) LockByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error) {
	return r.ByNumberAndOwner(ctx, number, ownerID)
}

func (r *memAccounts) ByOwner(ctx context.Context, ownerID string) ([]models.BankAccount, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	var out []models.BankAccount
	for _, a := range r.m.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAccounts) Exists(ctx context.Context, number string) (bool, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	_, ok := r.find(number)
	return ok, nil
}

func (r *memAccounts) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	accounts, err := r.ByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return int64(len(accounts)), nil
}

func (r *memAccounts) Update(ctx context.Context, account *models.BankAccount) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	i, ok := r.find(account.AccountNumber)
	if !ok {
		return service.ErrNotFound
	}
	r.m.accounts[i] = *account
	return nil
}

func (r *memAccounts) Delete(ctx context.Context, number string) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	i, ok := r.find(number)
	if !ok {
		return nil
	}
	r.m.accounts = append(r.m.accounts[:i], r.m.accounts[i+1:]...)
	return nil
}

type memTxns struct {
	m    *Memory
	lock bool
}

func (r *memTxns) Create(ctx context.Context, txn *models.Transaction) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	if err := r.m.FailTransactionCreate; err != nil {
		r.m.FailTransactionCreate = nil
		return err
	}
	r.m.txns = append(r.m.txns, *txn)
	return nil
}

func (r *memTxns) ByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	var out []models.Transaction
	for _, t := range r.m.txns {
		if t.AccountNumber == accountNumber {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTxns) ByIDAndAccount(ctx context.Context, id, accountNumber string) (*models.Transaction, error) {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	for _, t := range r.m.txns {
		if t.ID == id && t.AccountNumber == accountNumber {
			t := t
			return &t, nil
		}
	}
	return nil, service.ErrNotFound
}

func (r *memTxns) DeleteByAccount(ctx context.Context, accountNumber string) error {
	if r.lock {
		r.m.mu.Lock()
		defer r.m.mu.Unlock()
	}
	kept := r.m.txns[:0]
	for _, t := range r.m.txns {
		if t.AccountNumber != accountNumber {
			kept = append(kept, t)
		}
	}
	r.m.txns = kept
	return nil
}
