package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "QT", cfg.Quotation.ReferencePrefix)
	assert.Equal(t, "INV", cfg.Quotation.InvoicePrefix)
	assert.Equal(t, 14, cfg.Quotation.ValidityDays)
	assert.Equal(t, "30", cfg.Quotation.DefaultDepositPercentage.String())
	assert.True(t, cfg.Quotation.OverpaymentTolerance.IsZero())
	assert.Equal(t, 300*time.Second, cfg.Redis.CatalogTTL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("QUOTATION_DEFAULT_CURRENCY", "lkr")
	t.Setenv("INVOICE_OVERPAYMENT_TOLERANCE", "0.50")
	t.Setenv("QUOTATION_VALIDITY_DAYS", "7")

	cfg := Load()

	assert.Equal(t, StorageDriverMemory, cfg.App.StorageDriver)
	assert.Equal(t, "LKR", cfg.Quotation.DefaultCurrency)
	assert.Equal(t, "0.5", cfg.Quotation.OverpaymentTolerance.String())
	assert.Equal(t, 7, cfg.Quotation.ValidityDays)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", Name: "booking", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=booking port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
