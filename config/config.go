package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	ServerHost string `mapstructure:"SERVER_HOST"`

	DatabaseDriver       string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL          string `mapstructure:"DATABASE_URL"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`

	AuthJWTSecret     string `mapstructure:"AUTH_JWT_SECRET"`
	AuthTokenExpiry   int    `mapstructure:"AUTH_TOKEN_EXPIRY_HOURS"`
	CertificatePrefix string `mapstructure:"CERTIFICATE_PREFIX"`

	Environment string `mapstructure:"ENVIRONMENT"`
}

func InitConfig() (Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8280)
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_DB_PATH", "data/equiptrack.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_EXPIRY_HOURS", 24)
	viper.SetDefault("CERTIFICATE_PREFIX", "BWS-")
	viper.SetDefault("ENVIRONMENT", "development")

	// Missing .env is fine, environment variables still apply
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
