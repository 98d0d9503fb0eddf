package config

import (
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser   string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass   string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost   string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort   string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL   string        `mapstructure:"MIGRATION_URL"`
	SweepInterval  time.Duration `mapstructure:"SWEEP_INTERVAL"`
	SweepWorkers   int           `mapstructure:"SWEEP_WORKERS"`
	PersistTimeout time.Duration `mapstructure:"PERSIST_TIMEOUT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}

// Validate проверяет параметры планировщика перед запуском.
func (cfg Config) Validate() error {
	if cfg.SweepInterval <= 0 {
		return &models.ConfigurationError{Param: "SWEEP_INTERVAL", Reason: "must be a positive duration"}
	}
	if cfg.SweepWorkers <= 0 {
		return &models.ConfigurationError{Param: "SWEEP_WORKERS", Reason: "must be a positive integer"}
	}
	if cfg.PersistTimeout <= 0 {
		return &models.ConfigurationError{Param: "PERSIST_TIMEOUT", Reason: "must be a positive duration"}
	}
	if cfg.RequestTimeout <= 0 {
		return &models.ConfigurationError{Param: "REQUEST_TIMEOUT", Reason: "must be a positive duration"}
	}
	return nil
}
