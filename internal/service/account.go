package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

const (
	// DefaultCurrency is the only currency an account can hold.
	DefaultCurrency = "GBP"
	// AccountTypePersonal is the only supported account type.
	AccountTypePersonal = "personal"
)

// AccountPatch carries a partial account update. Blank fields are no-ops,
// not resets.
type AccountPatch struct {
	Name        string
	AccountType string
}

// AccountService owns the account lifecycle: number and sort-code
// generation, per-owner scoping, and the cascade when an account closes.
// It never touches Balance; that belongs to LedgerService.
type AccountService struct {
	store Store
	gen   *numberGen
}

// NewAccountService wires the lifecycle manager. A nil rng falls back to a
// time-seeded source; tests pass a seeded one to replay sequences.
func NewAccountService(store Store, rng *rand.Rand) *AccountService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AccountService{store: store, gen: newNumberGen(rng)}
}

// Open creates an account with a zero balance for an existing owner.
func (s *AccountService) Open(ctx context.Context, ownerID, name, accountType string) (*models.BankAccount, error) {
	if _, err := s.store.Users().ByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if accountType == "" {
		accountType = AccountTypePersonal
	}

	number, err := s.uniqueAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &models.BankAccount{
		AccountNumber: number,
		SortCode:      s.gen.sortCode(),
		Name:          name,
		AccountType:   accountType,
		Balance:       decimal.Zero,
		Currency:      DefaultCurrency,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Accounts().Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// uniqueAccountNumber re-rolls until the store has no such number. A
// concurrent winner of the same roll is caught by the primary-key
// constraint on insert; the loop only keeps collisions rare, not
// impossible.
func (s *AccountService) uniqueAccountNumber(ctx context.Context) (string, error) {
	for {
		number := s.gen.accountNumber()
		taken, err := s.store.Accounts().Exists(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
}

// List returns the caller's accounts in insertion order.
func (s *AccountService) List(ctx context.Context, ownerID string) ([]models.BankAccount, error) {
	return s.store.Accounts().ByOwner(ctx, ownerID)
}

// Get returns the account only when the caller owns it. A wrong owner and
// a missing account are the same ErrNotFound.
func (s *AccountService) Get(ctx context.Context, accountNumber, callerID string) (*models.BankAccount, error) {
	return s.store.Accounts().ByNumberAndOwner(ctx, accountNumber, callerID)
}

// Update applies the non-blank fields of patch to the caller's account.
func (s *AccountService) Update(ctx context.Context, accountNumber, callerID string, patch AccountPatch) (*models.BankAccount, error) {
	account, err := s.store.Accounts().ByNumberAndOwner(ctx, accountNumber, callerID)
	if err != nil {
		return nil, err
	}
	if patch.Name != "" {
		account.Name = patch.Name
	}
	if patch.AccountType != "" {
		account.AccountType = patch.AccountType
	}
	account.UpdatedAt = time.Now()
	if err := s.store.Accounts().Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Close deletes the caller's account together with its transaction
// history. A non-zero balance does not block closure.
func (s *AccountService) Close(ctx context.Context, accountNumber, callerID string) error {
	if _, err := s.store.Accounts().ByNumberAndOwner(ctx, accountNumber, callerID); err != nil {
		return err
	}
	return s.store.Atomically(ctx, func(tx Store) error {
		if err := tx.Transactions().DeleteByAccount(ctx, accountNumber); err != nil {
			return err
		}
		return tx.Accounts().Delete(ctx, accountNumber)
	})
}
