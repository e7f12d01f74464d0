package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

// gormStore implements service.Store on top of a *gorm.DB. Atomically
// rebinds the same repositories onto the transaction handle, so code
// inside the closure cannot accidentally write outside the transaction.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db as a service.Store.
func NewGormStore(db *gorm.DB) service.Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() service.UserRepository               { return &gormUsers{db: s.db} }
func (s *gormStore) Accounts() service.AccountRepository         { return &gormAccounts{db: s.db} }
func (s *gormStore) Transactions() service.TransactionRepository { return &gormTransactions{db: s.db} }

func (s *gormStore) Atomically(ctx context.Context, fn func(service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// notFound maps gorm's record-not-found onto the domain error so callers
// never see a storage detail.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormUsers) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *gormUsers) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

type gormAccounts struct {
	db *gorm.DB
}

func (r *gormAccounts) Create(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *gormAccounts) ByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.WithContext(ctx).
		Where("account_number = ? AND owner_id = ?", number, ownerID).
		First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *gormAccounts) LockByNumberAndOwner(ctx context.Context, number, ownerID string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_number = ? AND owner_id = ?", number, ownerID).
		First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *gormAccounts) ByOwner(ctx context.Context, ownerID string) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *gormAccounts) Exists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BankAccount{}).
		Where("account_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormAccounts) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BankAccount{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *gormAccounts) Update(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *gormAccounts) Delete(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).
		Where("account_number = ?", number).
		Delete(&models.BankAccount{}).Error
}

type gormTransactions struct {
	db *gorm.DB
}

func (r *gormTransactions) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *gormTransactions) ByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *gormTransactions) ByIDAndAccount(ctx context.Context, id, accountNumber string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_number = ?", id, accountNumber).
		First(&txn).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &txn, nil
}

func (r *gormTransactions) DeleteByAccount(ctx context.Context, accountNumber string) error {
	return r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Delete(&models.Transaction{}).Error
}
