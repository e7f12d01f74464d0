package service

import (
	"context"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

// UserRepository persists users keyed by their "usr-" id.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository persists bank accounts keyed by account number.
type AccountRepository interface {
	Create(ctx context.Context, account *models.BankAccount) error
	// ByNumberAndOwner returns the account only when both the number and
	// the owner match; a miss on either is the same "not found".
	ByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error)
	// LockByNumberAndOwner is ByNumberAndOwner with the row held for
	// update. Only meaningful inside Atomically; implementations outside a
	// transaction may degrade to a plain read.
	LockByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error)
	ByOwner(ctx context.Context, ownerID string) ([]models.BankAccount, error)
	Exists(ctx context.Context, number string) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, account *models.BankAccount) error
	Delete(ctx context.Context, number string) error
}

// TransactionRepository persists the append-only transaction log. There is
// deliberately no single-row update or delete; DeleteByAccount exists only
// for the account-closure cascade.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	ByIDAndAccount(ctx context.Context, id, accountNumber string) (*models.Transaction, error)
	DeleteByAccount(ctx context.Context, accountNumber string) error
}

// Store bundles the repositories behind one transactional boundary.
type Store interface {
	Users() UserRepository
	Accounts() AccountRepository
	Transactions() TransactionRepository

	// Atomically runs fn against a store whose writes commit together or
	// not at all. Returning an error from fn rolls everything back.
	Atomically(ctx context.Context, fn func(Store) error) error
}
