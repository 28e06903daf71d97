package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
	}

	KEYCLOAK struct {
		CertsURL    string `mapstructure:"CERTS_URL"`
		Issuer      string `mapstructure:"ISSUER"`
		Audience    string `mapstructure:"AUDIENCE"`
		CacheTTLMin int    `mapstructure:"CACHE_TTL_MIN"`
	}

	POLL struct {
		IntervalMs   int `mapstructure:"INTERVAL_MS"`
		MaxTimeoutMs int `mapstructure:"MAX_TIMEOUT_MS"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("EDUBRIDGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	if config.POLL.IntervalMs <= 0 {
		config.POLL.IntervalMs = 1000
	}
	if config.POLL.MaxTimeoutMs <= 0 {
		config.POLL.MaxTimeoutMs = 30000
	}
	if config.KEYCLOAK.CacheTTLMin <= 0 {
		config.KEYCLOAK.CacheTTLMin = 60
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
