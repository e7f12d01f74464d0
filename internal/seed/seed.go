// Package seed provisions a demo user and account for local development.
package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
	"github.com/ashishsoni123/eagle-bank-api/internal/models"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
)

const (
	seedEmail    = "demo@eaglebank.local"
	seedPassword = "password123"
)

func Run(st service.Store, users *service.UserService, accounts *service.AccountService) {
	ctx := context.Background()

	taken, err := st.Users().EmailTaken(ctx, seedEmail)
	if err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if taken {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	user, err := users.Create(ctx, service.NewUser{
		Name:     "Demo User",
		Email:    seedEmail,
		Phone:    "+441234567890",
		Password: seedPassword,
		Address: models.Address{
			Line1:    "1 Eagle Street",
			Town:     "London",
			County:   "Greater London",
			Postcode: "EC1A 1AA",
		},
	})
	if err != nil {
		logger.Log.Fatal("seed user failed", zap.Error(err))
	}

	account, err := accounts.Open(ctx, user.ID, "Demo Current Account", service.AccountTypePersonal)
	if err != nil {
		logger.Log.Fatal("seed account failed", zap.Error(err))
	}

	logger.Log.Info("seeded demo user",
		zap.String("email", seedEmail),
		zap.String("password", seedPassword),
		zap.String("accountNumber", account.AccountNumber))
}
