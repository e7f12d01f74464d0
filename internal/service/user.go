package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

// NewUser carries the fields needed to register a user. Field-format
// validation happens at the handler; the service only enforces the
// uniqueness rule.
type NewUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Address  models.Address
}

// UserPatch carries a partial user update. Blank fields are no-ops.
type UserPatch struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Address  *models.Address
}

// UserService manages user records. Every read and write is self-scoped:
// a caller may only act on their own record. It also enforces the
// delete-veto that keeps every bank account's owner resolvable.
type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Create(ctx context.Context, req NewUser) (*models.User, error) {
	taken, err := s.store.Users().EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        newUserID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user record. Unlike account lookups, a user id that
// exists but is not the caller's is ErrForbidden, not ErrNotFound; user
// ids are not secret.
func (s *UserService) Get(ctx context.Context, userID, callerID string) (*models.User, error) {
	user, err := s.store.Users().ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userID != callerID {
		return nil, ErrForbidden
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID, callerID string, patch UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, userID, callerID)
	if err != nil {
		return nil, err
	}

	if patch.Email != "" && patch.Email != user.Email {
		taken, err := s.store.Users().EmailTaken(ctx, patch.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
		user.Email = patch.Email
	}
	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Phone != "" {
		user.Phone = patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the caller's own record, vetoed while they still own
// accounts so every live account keeps a resolvable owner.
func (s *UserService) Delete(ctx context.Context, userID, callerID string) error {
	if _, err := s.Get(ctx, userID, callerID); err != nil {
		return err
	}
	owned, err := s.store.Accounts().CountByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return ErrConflict
	}
	return s.store.Users().Delete(ctx, userID)
}
