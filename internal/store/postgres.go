package store

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
	"github.com/ashishsoni123/eagle-bank-api/internal/models"
)

var DB *gorm.DB

// NewDB connects to postgres. The DSN is a postgres:// URL so the same
// value feeds both gorm and golang-migrate.
func NewDB(dsn string) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("connected to the database")
}

// DBMigrate runs the SQL migrations from migrations/ and then lets gorm
// reconcile any drift in the model schema.
func DBMigrate(dsn string) {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		logger.Log.Fatal("failed to init migrations", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := DB.AutoMigrate(&models.User{}, &models.BankAccount{}, &models.Transaction{}); err != nil {
		logger.Log.Fatal("failed to auto-migrate models", zap.Error(err))
	}
	logger.Log.Info("migrations loaded")
}
