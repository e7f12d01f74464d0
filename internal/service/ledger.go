package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// LedgerService is the only component allowed to mutate an account
// balance. Every balance change and its transaction record commit inside
// one storage transaction, with the account row locked for the
// read-check-write, so the log and the balance can never diverge.
type LedgerService struct {
	store Store
	newID func() string
}

// NewLedgerService wires the ledger. A nil ids source falls back to
// "tan-" + uuid; tests inject a deterministic one.
func NewLedgerService(store Store, ids func() string) *LedgerService {
	if ids == nil {
		ids = newTransactionID
	}
	return &LedgerService{store: store, newID: ids}
}

// Post applies a deposit or withdrawal to the caller's account and
// appends the transaction record. Upstream validation should already have
// rejected bad amounts; the check here guards the balance invariant, not
// request formatting.
func (s *LedgerService) Post(ctx context.Context, accountNumber, callerID string, amount decimal.Decimal, txType, currency, reference string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var posted *models.Transaction
	err := s.store.Atomically(ctx, func(tx Store) error {
		account, err := tx.Accounts().LockByNumberAndOwner(ctx, accountNumber, callerID)
		if err != nil {
			return err
		}
		if currency != account.Currency {
			return ErrCurrencyMismatch
		}

		switch txType {
		case TransactionTypeDeposit:
			account.Balance = account.Balance.Add(amount)
		case TransactionTypeWithdrawal:
			if account.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}
			account.Balance = account.Balance.Sub(amount)
		default:
			return ErrInvalidTransactionType
		}

		account.UpdatedAt = time.Now()
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		txn := &models.Transaction{
			ID:            s.newID(),
			AccountNumber: account.AccountNumber,
			Amount:        amount,
			Currency:      currency,
			Type:          txType,
			Reference:     reference,
			PostedBy:      callerID,
			CreatedAt:     time.Now(),
		}
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		posted = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// List returns the account's transactions in insertion order, after the
// same ownership check every account-scoped read goes through.
func (s *LedgerService) List(ctx context.Context, accountNumber, callerID string) ([]models.Transaction, error) {
	if _, err := s.store.Accounts().ByNumberAndOwner(ctx, accountNumber, callerID); err != nil {
		return nil, err
	}
	return s.store.Transactions().ByAccount(ctx, accountNumber)
}

// Get fetches one transaction. The account ownership check runs first so
// a transaction id never leaks across accounts; an id that exists under a
// different account is still ErrNotFound.
func (s *LedgerService) Get(ctx context.Context, transactionID, accountNumber, callerID string) (*models.Transaction, error) {
	if _, err := s.store.Accounts().ByNumberAndOwner(ctx, accountNumber, callerID); err != nil {
		return nil, err
	}
	return s.store.Transactions().ByIDAndAccount(ctx, transactionID, accountNumber)
}
