package configs

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ashishsoni123/eagle-bank-api/internal/logger"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		// DSN is a postgres:// URL, shared by gorm and golang-migrate.
		// Leave empty to run against the in-memory store.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
	Seed bool `mapstructure:"seed"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		logger.Log.Fatal("failed to parse config", zap.Error(err))
	}

	if AppConfig.JWT.Secret == "" {
		logger.Log.Fatal("jwt.secret must be configured")
	}
}
