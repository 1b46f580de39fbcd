package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string        `mapstructure:"port"`
	AppEnv  string        `mapstructure:"app_env"`
	DBURL   string        `mapstructure:"db_url"`
	CORS    string        `mapstructure:"cors_origins"`
	Auth    AuthConfig    `mapstructure:",squash"`
	Twilio  TwilioConfig  `mapstructure:",squash"`
	Redis   RedisConfig   `mapstructure:",squash"`
	Greeter GreeterConfig `mapstructure:",squash"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiryHours int    `mapstructure:"jwt_expiry_hours"`
}

type TwilioConfig struct {
	AccountSID  string `mapstructure:"twilio_account_sid"`
	AuthToken   string `mapstructure:"twilio_auth_token"`
	PhoneNumber string `mapstructure:"twilio_phone_number"`
}

// Enabled reports whether real SMS delivery is configured.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.PhoneNumber != ""
}

type RedisConfig struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type GreeterConfig struct {
	Schedule        string        `mapstructure:"greeting_schedule"`
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
}

// TokenTTL is the lifetime of issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpiryHours) * time.Hour
}

// CORSOrigins splits the comma separated CORS_ORIGINS value.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "production")
	v.SetDefault("db_url", "")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiry_hours", 168)
	v.SetDefault("twilio_account_sid", "")
	v.SetDefault("twilio_auth_token", "")
	v.SetDefault("twilio_phone_number", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("greeting_schedule", "0 8 * * *")
	v.SetDefault("dispatch_timeout", "15s")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL not set")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET not set")
	}
	if c.Auth.JWTExpiryHours <= 0 {
		return errors.New("JWT_EXPIRY_HOURS must be positive")
	}
	if c.Greeter.DispatchTimeout <= 0 {
		return errors.New("DISPATCH_TIMEOUT must be positive")
	}
	return nil
}
