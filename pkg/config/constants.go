package config

const (
	EnvPrefix = "MARKETOO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendMemory   = "memory"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
	StorageBackendRedis    = "redis"
)

const (
	EnvAppEnv          = "MARKETOO_APP_ENV"
	EnvLogLevel        = "MARKETOO_LOG_LEVEL"
	EnvProductsPath    = "MARKETOO_CATALOG_PRODUCTS_PATH"
	EnvCollectionsPath = "MARKETOO_CATALOG_COLLECTIONS_PATH"
	EnvPageSize        = "MARKETOO_PAGE_SIZE"
	EnvRelatedCount    = "MARKETOO_RELATED_COUNT"
	EnvRecentMax       = "MARKETOO_RECENT_MAX"
	EnvRecentDisplay   = "MARKETOO_RECENT_DISPLAY"
	EnvBankDiscountPct = "MARKETOO_BANK_DISCOUNT_PCT"
	EnvCurrencyCode    = "MARKETOO_CURRENCY_CODE"
	EnvCurrencySymbol  = "MARKETOO_CURRENCY_SYMBOL"
	EnvStorageBackend  = "MARKETOO_STORAGE_BACKEND"
	EnvDBDSN           = "MARKETOO_DB_DSN"
	EnvRedisURL        = "MARKETOO_REDIS_URL"
	EnvRedisAddr       = "MARKETOO_REDIS_ADDR"
)
