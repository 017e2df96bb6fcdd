package configs

import (
	"errors"

	"github.com/dasakash26/Banking-Simulation/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Seed struct {
		Enabled bool `mapstructure:"enabled"`
		Users   int  `mapstructure:"users"`
	} `mapstructure:"seed"`
	Simulation struct {
		ExpenseMinPercent float64 `mapstructure:"expense-min-percent"`
		ExpenseMaxPercent float64 `mapstructure:"expense-max-percent"`
		TransferChance    float64 `mapstructure:"transfer-chance"`
		TransferMin       int64   `mapstructure:"transfer-min"`
		TransferMax       int64   `mapstructure:"transfer-max"`
		EmergencyFloor    int64   `mapstructure:"emergency-floor"`
		EmergencyMin      int64   `mapstructure:"emergency-min"`
		EmergencyMax      int64   `mapstructure:"emergency-max"`
	} `mapstructure:"simulation"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("seed.enabled", true)
	viper.SetDefault("seed.users", 50)

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
