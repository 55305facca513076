package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/serendib-tours/booking-api/internal/config"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/domain/pricing"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/observability"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/shopspring/decimal"
)

// InvoiceService records payments against invoices and serves invoice reads
type InvoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	quotationRepo repository.QuotationRepository
	clock         clock.Clock
	settings      config.QuotationConfig
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	quotationRepo repository.QuotationRepository,
	clk clock.Clock,
	settings config.QuotationConfig,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		clock:         clk,
		settings:      settings,
		metrics:       metrics,
		logger:        logger,
	}
}

// RecordPaymentInput represents one externally confirmed payment
type RecordPaymentInput struct {
	InvoiceNumber    string
	Amount           decimal.Decimal
	PaymentType      enum.PaymentType
	PaymentReference *string
	PaymentDate      *time.Time
	Notes            *string
}

// RecordPayment adds a payment to the invoice's paid amount. A payment that
// would take paid_amount past total_amount plus the configured tolerance is
// rejected and nothing is written.
func (s *InvoiceService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Invoice, error) {
	amount := pricing.Round(input.Amount)
	if !amount.IsPositive() {
		return nil, apperror.NewInvalidPricingInputError("amount", "must be greater than zero")
	}
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_type", Message: "must be one of cash, bank_transfer, card, online"},
		})
	}

	invoice, err := s.GetInvoice(ctx, input.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	paymentDate := s.clock.Now()
	if input.PaymentDate != nil {
		paymentDate = input.PaymentDate.UTC()
	}

	recorded, err := s.invoiceRepo.AddPayment(ctx, invoice.ID, repository.InvoicePayment{
		Amount:    pricing.ToMinor(amount),
		Type:      input.PaymentType,
		Date:      paymentDate,
		Reference: input.PaymentReference,
		Notes:     input.Notes,
	}, pricing.ToMinor(s.settings.OverpaymentTolerance))
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	latest, err := s.GetInvoice(ctx, input.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	if !recorded {
		s.metrics.PaymentRecorded(string(input.PaymentType), "rejected")
		s.logger.WarnContext(ctx, "overpayment rejected",
			slog.String("invoice_number", latest.InvoiceNumber),
			slog.String("amount", amount.StringFixed(pricing.MinorUnitPlaces)),
		)
		return nil, apperror.NewOverpaymentRejectedError(
			amount.StringFixed(pricing.MinorUnitPlaces),
			latest.RemainingDecimal().StringFixed(pricing.MinorUnitPlaces),
		)
	}

	s.metrics.PaymentRecorded(string(input.PaymentType), "recorded")
	s.logger.InfoContext(ctx, "payment recorded",
		slog.String("invoice_number", latest.InvoiceNumber),
		slog.String("amount", amount.StringFixed(pricing.MinorUnitPlaces)),
		slog.String("invoice_status", string(latest.Status())),
	)
	return latest, nil
}

// GetInvoice retrieves an invoice by its number
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceForQuotation retrieves the invoice of an accepted quotation
func (s *InvoiceService) GetInvoiceForQuotation(ctx context.Context, reference string) (*entity.Invoice, error) {
	quotation, err := s.quotationRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	invoice, err := s.invoiceRepo.GetByQuotationReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices retrieves invoices with pagination and filters
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, 0, apperror.NewBadRequestError("Unknown invoice status " + string(*params.Status))
	}
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, total, nil
}
