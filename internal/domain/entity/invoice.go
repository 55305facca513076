package entity

import (
	"encoding/json"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Invoice tracks payments against exactly one accepted quotation. Customer,
// service and amount fields are a snapshot taken at acceptance time.
type Invoice struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	InvoiceNumber      string `gorm:"size:32;uniqueIndex;not null" json:"invoice_number"`
	QuotationID        uint   `gorm:"uniqueIndex;not null" json:"quotation_id"`
	QuotationReference string `gorm:"size:32;uniqueIndex;not null" json:"quotation_reference"`

	CustomerName  string           `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string           `gorm:"size:255;not null" json:"customer_email"`
	CustomerPhone *string          `gorm:"size:50" json:"customer_phone,omitempty"`
	ServiceName   string           `gorm:"size:255" json:"service_name"`
	ServiceType   enum.ServiceType `gorm:"size:20;not null" json:"service_type"`

	TotalAmount       int64   `gorm:"not null" json:"-"` // Stored in cents
	DepositPercentage float64 `gorm:"type:decimal(5,2);default:0" json:"deposit_percentage"`
	DepositAmount     int64   `gorm:"not null" json:"-"`
	BalanceAmount     int64   `gorm:"not null" json:"-"`
	Currency          string  `gorm:"size:3;not null" json:"currency"`

	PaidAmount       int64             `gorm:"not null;default:0" json:"-"`
	PaymentType      *enum.PaymentType `gorm:"size:20" json:"payment_type,omitempty"`
	PaymentDate      *time.Time        `json:"payment_date,omitempty"`
	PaymentReference *string           `gorm:"size:255" json:"payment_reference,omitempty"`
	Notes            *string           `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoiceFromQuotation snapshots the fields of an accepted quotation
func NewInvoiceFromQuotation(q *Quotation, invoiceNumber string) *Invoice {
	var phone *string
	if q.CustomerPhone != nil {
		p := *q.CustomerPhone
		phone = &p
	}
	return &Invoice{
		InvoiceNumber:      invoiceNumber,
		QuotationID:        q.ID,
		QuotationReference: q.Reference,
		CustomerName:       q.CustomerName,
		CustomerEmail:      q.CustomerEmail,
		CustomerPhone:      phone,
		ServiceName:        q.ServiceName,
		ServiceType:        q.ServiceType,
		TotalAmount:        q.TotalAmount,
		DepositPercentage:  q.DepositPercentage,
		DepositAmount:      q.DepositAmount,
		BalanceAmount:      q.BalanceAmount,
		Currency:           q.Currency,
	}
}

// Status derives the settlement status from paid_amount and total_amount
func (i *Invoice) Status() enum.InvoiceStatus {
	switch {
	case i.PaidAmount >= i.TotalAmount:
		return enum.InvoiceStatusPaid
	case i.PaidAmount > 0:
		return enum.InvoiceStatusPartial
	default:
		return enum.InvoiceStatusUnpaid
	}
}

// RemainingBalance returns what is still owed, never below zero
func (i *Invoice) RemainingBalance() int64 {
	if i.PaidAmount >= i.TotalAmount {
		return 0
	}
	return i.TotalAmount - i.PaidAmount
}

// RemainingDecimal returns the remaining balance as a decimal
func (i *Invoice) RemainingDecimal() decimal.Decimal {
	return decimal.New(i.RemainingBalance(), -2)
}

// MarshalJSON custom marshaler to convert cents to decimal and expose derived fields
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		TotalAmount      float64            `json:"total_amount"`
		DepositAmount    float64            `json:"deposit_amount"`
		BalanceAmount    float64            `json:"balance_amount"`
		PaidAmount       float64            `json:"paid_amount"`
		RemainingBalance float64            `json:"remaining_balance"`
		InvoiceStatus    enum.InvoiceStatus `json:"invoice_status"`
	}{
		Alias:            Alias(i),
		TotalAmount:      MinorToFloat(i.TotalAmount),
		DepositAmount:    MinorToFloat(i.DepositAmount),
		BalanceAmount:    MinorToFloat(i.BalanceAmount),
		PaidAmount:       MinorToFloat(i.PaidAmount),
		RemainingBalance: MinorToFloat(i.RemainingBalance()),
		InvoiceStatus:    i.Status(),
	})
}
