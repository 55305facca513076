package memory

import (
	"context"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
)

type invoiceRepository struct {
	store *Store
}

// NewInvoiceRepository creates an invoice repository over store
func NewInvoiceRepository(store *Store) domainRepo.InvoiceRepository {
	return &invoiceRepository{store: store}
}

// insertInvoiceLocked enforces the unique indexes of the invoices table.
// The caller must hold s.mu.
func (s *Store) insertInvoiceLocked(invoice *entity.Invoice) error {
	for _, existing := range s.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber ||
			existing.QuotationID == invoice.QuotationID ||
			existing.QuotationReference == invoice.QuotationReference {
			return ErrDuplicateKey
		}
	}

	s.nextInvoiceID++
	invoice.ID = s.nextInvoiceID
	now := s.now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	stored := *invoice
	s.invoices[stored.ID] = &stored
	return nil
}

func (r *invoiceRepository) find(match func(*entity.Invoice) bool) *entity.Invoice {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if match(inv) {
			out := *inv
			return &out
		}
	}
	return nil
}

func (r *invoiceRepository) GetByID(_ context.Context, id uint) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.ID == id }), nil
}

func (r *invoiceRepository) GetByNumber(_ context.Context, invoiceNumber string) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.InvoiceNumber == invoiceNumber }), nil
}

func (r *invoiceRepository) GetByQuotationReference(_ context.Context, reference string) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.QuotationReference == reference }), nil
}

func (r *invoiceRepository) List(_ context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if params.Search != "" &&
			!containsFold(inv.InvoiceNumber, params.Search) &&
			!containsFold(inv.QuotationReference, params.Search) &&
			!containsFold(inv.CustomerName, params.Search) {
			continue
		}
		if params.Status != nil && inv.Status() != *params.Status {
			continue
		}
		matched = append(matched, *inv)
	}

	newestFirst(matched,
		func(inv entity.Invoice) time.Time { return inv.CreatedAt },
		func(inv entity.Invoice) uint { return inv.ID })

	return page(matched, params.Pagination), int64(len(matched)), nil
}

func (r *invoiceRepository) AddPayment(_ context.Context, id uint, payment domainRepo.InvoicePayment, tolerance int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok || inv.PaidAmount+payment.Amount > inv.TotalAmount+tolerance {
		return false, nil
	}

	paymentType := payment.Type
	paymentDate := payment.Date
	inv.PaidAmount += payment.Amount
	inv.PaymentType = &paymentType
	inv.PaymentDate = &paymentDate
	if payment.Reference != nil {
		ref := *payment.Reference
		inv.PaymentReference = &ref
	}
	if payment.Notes != nil {
		notes := *payment.Notes
		inv.Notes = &notes
	}
	inv.UpdatedAt = s.now()
	return true, nil
}
