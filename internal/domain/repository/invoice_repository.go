package repository

import (
	"context"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices are created by QuotationRepository.Accept and only ever change
// through AddPayment.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)
	GetByQuotationReference(ctx context.Context, reference string) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	// AddPayment adds payment.Amount to paid_amount only if the new total
	// stays within total_amount + tolerance. It reports whether the row changed.
	AddPayment(ctx context.Context, id uint, payment InvoicePayment, tolerance int64) (bool, error)
}

// InvoicePayment is one externally confirmed payment, amounts in cents
type InvoicePayment struct {
	Amount    int64
	Type      enum.PaymentType
	Date      time.Time
	Reference *string
	Notes     *string
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
}
