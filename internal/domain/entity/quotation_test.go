package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveStatusOverlay(t *testing.T) {
	validUntil := date(2026, time.March, 10)

	tests := []struct {
		name   string
		stored enum.QuotationStatus
		now    time.Time
		want   enum.QuotationStatus
	}{
		{"sent before expiry", enum.QuotationStatusSent, date(2026, time.March, 9), enum.QuotationStatusSent},
		{"sent late on the last valid day", enum.QuotationStatusSent, time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC), enum.QuotationStatusSent},
		{"sent the day after", enum.QuotationStatusSent, date(2026, time.March, 11), enum.QuotationStatusExpired},
		{"draft expired", enum.QuotationStatusDraft, date(2026, time.April, 1), enum.QuotationStatusExpired},
		{"viewed expired", enum.QuotationStatusViewed, date(2026, time.April, 1), enum.QuotationStatusExpired},
		{"accepted is terminal", enum.QuotationStatusAccepted, date(2026, time.April, 1), enum.QuotationStatusAccepted},
		{"rejected is terminal", enum.QuotationStatusRejected, date(2026, time.April, 1), enum.QuotationStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quotation{Status: tt.stored, ValidUntil: validUntil}
			assert.Equal(t, tt.want, q.EffectiveStatus(tt.now))
			assert.Equal(t, tt.stored, q.Status, "stored status must not change")
		})
	}
}

func TestQuotationJSONRendersDecimalsAndDates(t *testing.T) {
	end := date(2026, time.May, 5)
	q := Quotation{
		Reference:      "QT-00AA11BB",
		ServiceType:    enum.ServiceTypeTour,
		ServiceDetails: ServiceDetailsJSON{&TourDetails{PackageName: "Hill Country", DurationDays: 5, Nights: 4}},
		StartDate:      date(2026, time.May, 1),
		EndDate:        &end,
		Duration:       5,
		Adults:         2,
		Subtotal:       120000,
		TotalAmount:    108000,
		DepositAmount:  32400,
		BalanceAmount:  75600,
		Currency:       "USD",
		ValidUntil:     date(2026, time.April, 15),
		Status:         enum.QuotationStatusSent,
	}
	q.WithEffectiveStatus(date(2026, time.April, 1))

	raw, err := json.Marshal(q)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 1080.0, out["total_amount"])
	assert.Equal(t, 324.0, out["deposit_amount"])
	assert.Equal(t, 756.0, out["balance_amount"])
	assert.Equal(t, "2026-05-01", out["start_date"])
	assert.Equal(t, "2026-05-05", out["end_date"])
	assert.Equal(t, "2026-04-15", out["valid_until"])
	assert.Equal(t, 4.0, out["nights"])
	assert.Equal(t, "sent", out["effective_status"])
	assert.NotContains(t, out, "infants")

	details, ok := out["service_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hill Country", details["package_name"])
}

func TestInvoiceStatusDerivation(t *testing.T) {
	inv := &Invoice{TotalAmount: 100000}
	assert.Equal(t, enum.InvoiceStatusUnpaid, inv.Status())
	assert.Equal(t, int64(100000), inv.RemainingBalance())

	inv.PaidAmount = 50000
	assert.Equal(t, enum.InvoiceStatusPartial, inv.Status())
	assert.Equal(t, int64(50000), inv.RemainingBalance())

	inv.PaidAmount = 100000
	assert.Equal(t, enum.InvoiceStatusPaid, inv.Status())
	assert.Zero(t, inv.RemainingBalance())

	inv.PaidAmount = 100100
	assert.Equal(t, enum.InvoiceStatusPaid, inv.Status())
	assert.Zero(t, inv.RemainingBalance())
}

func TestNewInvoiceFromQuotationSnapshotsFields(t *testing.T) {
	phone := "+94 77 123 4567"
	q := &Quotation{
		ID:                7,
		Reference:         "QT-12345678",
		CustomerName:      "Nadia Perera",
		CustomerEmail:     "nadia@example.com",
		CustomerPhone:     &phone,
		ServiceName:       "Colombo - Kandy",
		ServiceType:       enum.ServiceTypeTransfer,
		TotalAmount:       4500,
		DepositPercentage: 20,
		DepositAmount:     900,
		BalanceAmount:     3600,
		Currency:          "LKR",
	}

	inv := NewInvoiceFromQuotation(q, "INV-ABCDEF12")
	phone = "changed"

	assert.Equal(t, uint(7), inv.QuotationID)
	assert.Equal(t, "QT-12345678", inv.QuotationReference)
	assert.Equal(t, "+94 77 123 4567", *inv.CustomerPhone)
	assert.Equal(t, int64(4500), inv.TotalAmount)
	assert.Equal(t, int64(900), inv.DepositAmount)
	assert.Equal(t, "LKR", inv.Currency)
	assert.Zero(t, inv.PaidAmount)
}

func TestServiceDetailsColumnKeepsTheVariant(t *testing.T) {
	col := ServiceDetailsJSON{&HotelDetails{HotelName: "Galle Fort Inn", Facilities: []string{"Pool", "Spa"}}}
	value, err := col.Value()
	require.NoError(t, err)

	var scanned ServiceDetailsJSON
	require.NoError(t, scanned.Scan(value))
	hotel, ok := scanned.ServiceDetails.(*HotelDetails)
	require.True(t, ok)
	assert.Equal(t, []string{"Pool", "Spa"}, hotel.Facilities)

	var bad ServiceDetailsJSON
	err = bad.Scan(`{"type":"cruise","data":{}}`)
	assert.Error(t, err)
}
