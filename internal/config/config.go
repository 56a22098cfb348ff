package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Alturino/nebula/internal/constants"
)

type Application struct {
	Env           string        `mapstructure:"env"            json:"env"`
	Host          string        `mapstructure:"host"           json:"host"`
	SecretKey     string        `mapstructure:"secret_key"     json:"-"`
	AdminEmail    string        `mapstructure:"admin_email"    json:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password" json:"-"`
	SessionHeader string        `mapstructure:"session_header" json:"session_header"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"    json:"session_ttl"`
	Port          int           `mapstructure:"port"           json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	TimeZone       string `mapstructure:"timezone"        json:"timezone"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int    `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int    `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Verification struct {
	CodeTTL     time.Duration `mapstructure:"code_ttl"     json:"code_ttl"`
	RateWindow  time.Duration `mapstructure:"rate_window"  json:"rate_window"`
	MaxAttempts int           `mapstructure:"max_attempts" json:"max_attempts"`
	RateLimit   int           `mapstructure:"rate_limit"   json:"rate_limit"`
}

type Mail struct {
	Mode     string        `mapstructure:"mode"     json:"mode"`
	Endpoint string        `mapstructure:"endpoint" json:"endpoint"`
	From     string        `mapstructure:"from"     json:"from"`
	Timeout  time.Duration `mapstructure:"timeout"  json:"timeout"`
}

type Payment struct {
	DeliveryFee     decimal.Decimal `mapstructure:"delivery_fee"      json:"delivery_fee"`
	CashHandlingFee decimal.Decimal `mapstructure:"cash_handling_fee" json:"cash_handling_fee"`
}

type Config struct {
	Database     `mapstructure:"db"           json:"db"`
	Cache        `mapstructure:"cache"        json:"cache"`
	Application  `mapstructure:"application"  json:"application"`
	Otel         `mapstructure:"otel"         json:"otel"`
	Verification `mapstructure:"verification" json:"verification"`
	Mail         `mapstructure:"mail"         json:"mail"`
	Payment      `mapstructure:"payment"      json:"payment"`
}

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "development")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("application.session_header", "X-Session-Id")
	v.SetDefault("application.session_ttl", 2*time.Hour)
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("verification.code_ttl", 10*time.Minute)
	v.SetDefault("verification.rate_window", 15*time.Minute)
	v.SetDefault("verification.max_attempts", 5)
	v.SetDefault("verification.rate_limit", 5)
	v.SetDefault("mail.mode", "log")
	v.SetDefault("mail.from", "no-reply@nebula.restaurant")
	v.SetDefault("mail.timeout", 10*time.Second)
	v.SetDefault("payment.delivery_fee", "3.50")
	v.SetDefault("payment.cash_handling_fee", "2.00")
}

func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "config Get").
			Str(constants.KEY_PROCESS, "init config").
			Str("filename", filename).
			Logger()

		v := viper.New()
		v.SetConfigName(filename)
		v.AddConfigPath("./env")
		v.SetConfigType("yaml")
		v.AutomaticEnv()
		setDefaults(v)

		logger = logger.With().Str(constants.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := v.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(constants.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		cfg := Config{}
		err = v.Unmarshal(&cfg, viper.DecodeHook(decodeHook()))
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(constants.KEY_CONFIG, cfg).Logger()
		logger.Info().Msg("unmarshaled config")
	})
	return config
}
