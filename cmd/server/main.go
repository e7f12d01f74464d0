package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ashishsoni123/eagle-bank-api/configs"
	"github.com/ashishsoni123/eagle-bank-api/internal/handlers"
	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
	"github.com/ashishsoni123/eagle-bank-api/internal/routes"
	"github.com/ashishsoni123/eagle-bank-api/internal/seed"
	"github.com/ashishsoni123/eagle-bank-api/internal/service"
	"github.com/ashishsoni123/eagle-bank-api/internal/store"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()

	var st service.Store
	if dsn := configs.AppConfig.DB.DSN; dsn != "" {
		store.NewDB(dsn)
		store.DBMigrate(dsn)
		st = store.NewGormStore(store.DB)
	} else {
		logger.Log.Warn("no db.dsn configured, using in-memory store")
		st = store.NewMemory()
	}

	userService := service.NewUserService(st)
	accountService := service.NewAccountService(st, nil)
	ledgerService := service.NewLedgerService(st, nil)
	authService := service.NewAuthService(st, []byte(configs.AppConfig.JWT.Secret))

	if configs.AppConfig.Seed {
		seed.Run(st, userService, accountService)
	}

	api := handlers.New(userService, accountService, ledgerService, authService)
	router := routes.NewRoutes(api)

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	if store.DB != nil {
		sqlDB, err := store.DB.DB()
		if err != nil {
			logger.Log.Error("db close skipped, reason:", zap.Error(err))
		} else {
			sqlDB.Close()
			logger.Log.Info("db closed")
		}
	}

	logger.Log.Info("server stopped")
}
