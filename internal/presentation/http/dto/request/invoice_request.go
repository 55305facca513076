package request

import "github.com/shopspring/decimal"

// RecordPaymentRequest represents an externally confirmed payment
type RecordPaymentRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	PaymentType      string          `json:"payment_type" binding:"required"`
	PaymentReference *string         `json:"payment_reference"`
	PaymentDate      *string         `json:"payment_date"`
	Notes            *string         `json:"notes"`
}

// InvoiceListQuery holds the admin invoice list filters
type InvoiceListQuery struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
	Status  string `form:"status"`
}
