package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService exchanges email+password for a signed token. The token's
// subject is the user id every downstream ownership check keys on.
type AuthService struct {
	store    Store
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(store Store, secret []byte) *AuthService {
	return &AuthService{store: store, secret: secret, tokenTTL: 24 * time.Hour}
}

// Login verifies the credentials and mints an HS256 token. Bad email and
// bad password are the same ErrForbidden.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.Users().ByEmail(ctx, email)
	if err != nil {
		return "", ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrForbidden
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
