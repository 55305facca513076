package entity

import (
	"encoding/json"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of date-only fields
const DateLayout = "2006-01-02"

// Quotation is a priced, time-bounded offer for one travel service
type Quotation struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:32;uniqueIndex;not null" json:"reference"`

	CustomerName  string  `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string  `gorm:"size:255;not null;index" json:"customer_email"`
	CustomerPhone *string `gorm:"size:50" json:"customer_phone,omitempty"`

	ServiceType    enum.ServiceType   `gorm:"size:20;not null;index" json:"service_type"`
	ServiceID      uint               `gorm:"not null" json:"service_id"`
	ServiceName    string             `gorm:"size:255" json:"service_name"`
	ServiceDetails ServiceDetailsJSON `gorm:"type:jsonb;not null" json:"service_details"`

	StartDate time.Time  `gorm:"type:date;not null" json:"-"`
	EndDate   *time.Time `gorm:"type:date" json:"-"`
	Duration  int        `gorm:"not null;default:1" json:"duration"`

	Adults   int `gorm:"default:0" json:"adults,omitempty"`
	Children int `gorm:"default:0" json:"children,omitempty"`
	Infants  int `gorm:"default:0" json:"infants,omitempty"`

	// Amounts are stored in cents and rendered as decimals by MarshalJSON
	BasePrice            int64   `gorm:"not null;default:0" json:"-"`
	AccommodationUpgrade int64   `gorm:"not null;default:0" json:"-"`
	DiscountPercentage   float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	DiscountAmount       int64   `gorm:"not null;default:0" json:"-"`
	Subtotal             int64   `gorm:"not null;default:0" json:"-"`
	TotalAmount          int64   `gorm:"not null;default:0" json:"-"`
	Currency             string  `gorm:"size:3;not null" json:"currency"`
	DepositPercentage    float64 `gorm:"type:decimal(5,2);default:0" json:"deposit_percentage"`
	DepositAmount        int64   `gorm:"not null;default:0" json:"-"`
	BalanceAmount        int64   `gorm:"not null;default:0" json:"-"`

	ValidUntil      time.Time            `gorm:"type:date;not null" json:"-"`
	Status          enum.QuotationStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Effective       enum.QuotationStatus `gorm:"-" json:"effective_status,omitempty"` // Filled by WithEffectiveStatus

	FirstViewedAt *time.Time `json:"first_viewed_at,omitempty"`
	ViewCount     int        `gorm:"not null;default:0" json:"view_count"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`

	SpecialRequests  *string                     `gorm:"type:text" json:"special_requests,omitempty"`
	IncludedServices datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"included_services"`
	ExcludedServices datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"excluded_services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// MarshalJSON custom marshaler to convert cents to decimal and dates to YYYY-MM-DD
func (q Quotation) MarshalJSON() ([]byte, error) {
	type Alias Quotation
	var endDate *string
	if q.EndDate != nil {
		formatted := q.EndDate.Format(DateLayout)
		endDate = &formatted
	}
	var nights *int
	if q.ServiceType == enum.ServiceTypeTour {
		n := q.Nights()
		nights = &n
	}
	return json.Marshal(&struct {
		Alias
		StartDate            string  `json:"start_date"`
		EndDate              *string `json:"end_date,omitempty"`
		Nights               *int    `json:"nights,omitempty"`
		ValidUntil           string  `json:"valid_until"`
		BasePrice            float64 `json:"base_price"`
		AccommodationUpgrade float64 `json:"accommodation_upgrade"`
		DiscountAmount       float64 `json:"discount_amount"`
		Subtotal             float64 `json:"subtotal"`
		TotalAmount          float64 `json:"total_amount"`
		DepositAmount        float64 `json:"deposit_amount"`
		BalanceAmount        float64 `json:"balance_amount"`
	}{
		Alias:                Alias(q),
		StartDate:            q.StartDate.Format(DateLayout),
		EndDate:              endDate,
		Nights:               nights,
		ValidUntil:           q.ValidUntil.Format(DateLayout),
		BasePrice:            MinorToFloat(q.BasePrice),
		AccommodationUpgrade: MinorToFloat(q.AccommodationUpgrade),
		DiscountAmount:       MinorToFloat(q.DiscountAmount),
		Subtotal:             MinorToFloat(q.Subtotal),
		TotalAmount:          MinorToFloat(q.TotalAmount),
		DepositAmount:        MinorToFloat(q.DepositAmount),
		BalanceAmount:        MinorToFloat(q.BalanceAmount),
	})
}

// Nights returns duration minus one, the number of nights of a tour
func (q *Quotation) Nights() int {
	if q.Duration <= 1 {
		return 0
	}
	return q.Duration - 1
}

// IsExpired reports whether valid_until lies strictly before the date of now.
// A quotation stays valid for the whole of its valid_until day.
func (q *Quotation) IsExpired(now time.Time) bool {
	return DateOf(q.ValidUntil).Before(DateOf(now))
}

// EffectiveStatus applies the expiration overlay to the stored status.
// Accepted and rejected are terminal and never reported as expired.
func (q *Quotation) EffectiveStatus(now time.Time) enum.QuotationStatus {
	if q.Status.IsTerminal() {
		return q.Status
	}
	if q.IsExpired(now) {
		return enum.QuotationStatusExpired
	}
	return q.Status
}

// WithEffectiveStatus fills the EffectiveStatus field for outward responses
func (q *Quotation) WithEffectiveStatus(now time.Time) *Quotation {
	q.Effective = q.EffectiveStatus(now)
	return q
}

// DateOf truncates t to midnight UTC of its calendar day
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MinorToFloat converts cents to a decimal amount for JSON output
func MinorToFloat(minor int64) float64 {
	return decimal.New(minor, -2).InexactFloat64()
}
