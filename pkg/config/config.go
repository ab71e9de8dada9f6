package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "GTL"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if cfg.DB.Driver != "sqlite" {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env              string   `envconfig:"GTL_APP_ENV" default:"dev"`
	Port             string   `envconfig:"GTL_APP_PORT" default:"8080"`
	LogLevel         string   `envconfig:"GTL_LOG_LEVEL" default:"info"`
	LogWarnStack     bool     `envconfig:"GTL_LOG_WARN_STACK" default:"false"`
	ExtraCORSOrigins []string `envconfig:"GTL_APP_EXTRA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GTL_DB_DSN"`
	Driver string `envconfig:"GTL_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"GTL_DB_HOST"`
	Port     int    `envconfig:"GTL_DB_PORT" default:"5432"`
	User     string `envconfig:"GTL_DB_USER"`
	Password string `envconfig:"GTL_DB_PASSWORD"`
	Name     string `envconfig:"GTL_DB_NAME"`
	SSLMode  string `envconfig:"GTL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GTL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GTL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GTL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GTL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for envVar, value := range map[string]string{
		"GTL_DB_HOST": db.Host,
		"GTL_DB_USER": db.User,
		"GTL_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either GTL_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"GTL_REDIS_URL"`
	Address      string        `envconfig:"GTL_REDIS_ADDR"`
	Password     string        `envconfig:"GTL_REDIS_PASSWORD"`
	DB           int           `envconfig:"GTL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GTL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GTL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GTL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GTL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GTL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries the tunables for order and quote creation.
type CheckoutConfig struct {
	DefaultCurrency  string        `envconfig:"GTL_CHECKOUT_DEFAULT_CURRENCY" default:"ZAR"`
	QuoteValidity    time.Duration `envconfig:"GTL_CHECKOUT_QUOTE_VALIDITY" default:"720h"`
	CartSnapshotTTL  time.Duration `envconfig:"GTL_CHECKOUT_CART_TTL" default:"168h"`
	QuoteRefPrefix   string        `envconfig:"GTL_CHECKOUT_QUOTE_REF_PREFIX" default:"GT"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GTL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GTL_AUTO_MIGRATE" default:"false"`
}
