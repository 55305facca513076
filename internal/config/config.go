package config

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Quotation QuotationConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name          string
	Env           string
	Port          string
	Debug         bool
	StorageDriver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// RedisConfig configures the catalog cache. An empty Addr disables it.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// QuotationConfig holds the business defaults of the quotation engine
type QuotationConfig struct {
	ReferencePrefix          string
	InvoicePrefix            string
	ValidityDays             int
	DefaultDepositPercentage decimal.Decimal
	DefaultCurrency          string
	// OverpaymentTolerance is how far paid_amount may exceed total_amount.
	// Zero rejects any overpayment.
	OverpaymentTolerance decimal.Decimal
}

// AdminConfig seeds the first back-office account on startup
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "booking-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "booking")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CATALOG_TTL_SECONDS", 300)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "booking-api")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("QUOTATION_REFERENCE_PREFIX", "QT")
	viper.SetDefault("INVOICE_NUMBER_PREFIX", "INV")
	viper.SetDefault("QUOTATION_VALIDITY_DAYS", 14)
	viper.SetDefault("QUOTATION_DEFAULT_DEPOSIT_PERCENTAGE", "30")
	viper.SetDefault("QUOTATION_DEFAULT_CURRENCY", "USD")
	viper.SetDefault("INVOICE_OVERPAYMENT_TOLERANCE", "0")

	return &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Env:           viper.GetString("APP_ENV"),
			Port:          viper.GetString("APP_PORT"),
			Debug:         viper.GetBool("APP_DEBUG"),
			StorageDriver: strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			CatalogTTL: time.Duration(viper.GetInt("REDIS_CATALOG_TTL_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Quotation: QuotationConfig{
			ReferencePrefix:          viper.GetString("QUOTATION_REFERENCE_PREFIX"),
			InvoicePrefix:            viper.GetString("INVOICE_NUMBER_PREFIX"),
			ValidityDays:             viper.GetInt("QUOTATION_VALIDITY_DAYS"),
			DefaultDepositPercentage: decimalSetting("QUOTATION_DEFAULT_DEPOSIT_PERCENTAGE"),
			DefaultCurrency:          strings.ToUpper(viper.GetString("QUOTATION_DEFAULT_CURRENCY")),
			OverpaymentTolerance:     decimalSetting("INVOICE_OVERPAYMENT_TOLERANCE"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Name:     viper.GetString("ADMIN_NAME"),
		},
	}
}

func decimalSetting(key string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using 0", key, raw)
		return decimal.Zero
	}
	return d
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
