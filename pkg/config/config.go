package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/next1store/marketoo-down/pkg/enums"
)

type Config struct {
	App        AppConfig
	Catalog    CatalogConfig
	Storefront StorefrontConfig
	Order      OrderConfig
	Storage    StorageConfig
	DB         DBConfig
	Redis      RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MARKETOO_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"MARKETOO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARKETOO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	ProductsPath    string `envconfig:"MARKETOO_CATALOG_PRODUCTS_PATH" required:"true"`
	CollectionsPath string `envconfig:"MARKETOO_CATALOG_COLLECTIONS_PATH" required:"true"`
}

// StorefrontConfig holds the presentation constants of the catalog and cart.
type StorefrontConfig struct {
	PageSize        int    `envconfig:"MARKETOO_PAGE_SIZE" default:"8"`
	RelatedCount    int    `envconfig:"MARKETOO_RELATED_COUNT" default:"3"`
	RecentMax       int    `envconfig:"MARKETOO_RECENT_MAX" default:"8"`
	RecentDisplay   int    `envconfig:"MARKETOO_RECENT_DISPLAY" default:"4"`
	BankDiscountPct int    `envconfig:"MARKETOO_BANK_DISCOUNT_PCT" default:"10"`
	CurrencySymbol  string `envconfig:"MARKETOO_CURRENCY_SYMBOL"`
	CurrencyCode    string `envconfig:"MARKETOO_CURRENCY_CODE" default:"LYD"`
	SortLocale      string `envconfig:"MARKETOO_SORT_LOCALE" default:"ar"`
}

type OrderConfig struct {
	MessagingPhone string `envconfig:"MARKETOO_ORDER_MESSAGING_PHONE" default:"218945890862"`
	SummaryHeading string `envconfig:"MARKETOO_ORDER_SUMMARY_HEADING" default:"*ملخص طلب Marketoo*"`
}

// StorageConfig selects where the recently viewed list is persisted.
type StorageConfig struct {
	Backend string `envconfig:"MARKETOO_STORAGE_BACKEND" default:"sqlite"`
	Key     string `envconfig:"MARKETOO_STORAGE_KEY" default:"marketoo_views"`
}

type DBConfig struct {
	Driver string `envconfig:"MARKETOO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"MARKETOO_DB_DSN" default:"marketoo.db"`

	AutoMigrate bool `envconfig:"MARKETOO_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"MARKETOO_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"MARKETOO_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"MARKETOO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARKETOO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MARKETOO_REDIS_URL"`
	Address      string        `envconfig:"MARKETOO_REDIS_ADDR"`
	Password     string        `envconfig:"MARKETOO_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARKETOO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARKETOO_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"MARKETOO_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"MARKETOO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARKETOO_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"MARKETOO_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Symbol returns the configured currency symbol, or the currency's own symbol when unset.
func (s StorefrontConfig) Symbol() string {
	if symbol := strings.TrimSpace(s.CurrencySymbol); symbol != "" {
		return symbol
	}
	currency, err := enums.ParseCurrency(s.CurrencyCode)
	if err != nil {
		return ""
	}
	return currency.Symbol()
}

// NormalizedBackend returns the lower-cased storage backend name.
func (s StorageConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return StorageBackendSQLite
	}
	return backend
}

func (c *Config) validate() error {
	sf := c.Storefront
	if sf.PageSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvPageSize)
	}
	if sf.RelatedCount < 0 || sf.RecentDisplay < 0 {
		return fmt.Errorf("%s and %s must not be negative", EnvRelatedCount, EnvRecentDisplay)
	}
	if sf.RecentMax <= 0 {
		return fmt.Errorf("%s must be positive", EnvRecentMax)
	}
	if sf.BankDiscountPct < 0 || sf.BankDiscountPct > 100 {
		return fmt.Errorf("%s must be between 0 and 100", EnvBankDiscountPct)
	}
	if _, err := enums.ParseCurrency(sf.CurrencyCode); err != nil {
		return fmt.Errorf("%s: %w", EnvCurrencyCode, err)
	}

	switch c.Storage.NormalizedBackend() {
	case StorageBackendMemory:
	case StorageBackendSQLite, StorageBackendPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the %s backend", EnvDBDSN, c.Storage.NormalizedBackend())
		}
	case StorageBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}
	return nil
}
