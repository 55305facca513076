package memory

import (
	"context"
	"slices"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
)

type quotationRepository struct {
	store *Store
}

// NewQuotationRepository creates a quotation repository over store
func NewQuotationRepository(store *Store) domainRepo.QuotationRepository {
	return &quotationRepository{store: store}
}

func (r *quotationRepository) Create(_ context.Context, quotation *entity.Quotation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.quotations {
		if existing.Reference == quotation.Reference {
			return ErrDuplicateKey
		}
	}

	s.nextQuotationID++
	quotation.ID = s.nextQuotationID
	now := s.now()
	if quotation.CreatedAt.IsZero() {
		quotation.CreatedAt = now
	}
	quotation.UpdatedAt = now

	stored := *quotation
	s.quotations[stored.ID] = &stored
	return nil
}

func (r *quotationRepository) GetByID(_ context.Context, id uint) (*entity.Quotation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotations[id]
	if !ok {
		return nil, nil
	}
	out := *q
	return &out, nil
}

func (r *quotationRepository) GetByReference(_ context.Context, reference string) (*entity.Quotation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.quotations {
		if q.Reference == reference {
			out := *q
			return &out, nil
		}
	}
	return nil, nil
}

func (r *quotationRepository) List(_ context.Context, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.Quotation, 0, len(s.quotations))
	for _, q := range s.quotations {
		if params.Search != "" &&
			!containsFold(q.Reference, params.Search) &&
			!containsFold(q.CustomerName, params.Search) &&
			!containsFold(q.CustomerEmail, params.Search) {
			continue
		}
		if params.Status != nil && q.Status != *params.Status {
			continue
		}
		if params.ServiceType != nil && q.ServiceType != *params.ServiceType {
			continue
		}
		matched = append(matched, *q)
	}

	newestFirst(matched,
		func(q entity.Quotation) time.Time { return q.CreatedAt },
		func(q entity.Quotation) uint { return q.ID })

	return page(matched, params.Pagination), int64(len(matched)), nil
}

func (r *quotationRepository) RecordView(_ context.Context, id uint, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotations[id]
	if !ok {
		return nil
	}
	q.ViewCount++
	if q.FirstViewedAt == nil {
		viewed := at
		q.FirstViewedAt = &viewed
	}
	if q.Status == enum.QuotationStatusSent {
		q.Status = enum.QuotationStatusViewed
	}
	q.UpdatedAt = at
	return nil
}

func (r *quotationRepository) TransitionStatus(_ context.Context, id uint, from []enum.QuotationStatus, to enum.QuotationStatus, at time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotations[id]
	if !ok || !slices.Contains(from, q.Status) {
		return false, nil
	}
	applyTransition(q, to, at)
	return true, nil
}

func (r *quotationRepository) Accept(_ context.Context, id uint, from []enum.QuotationStatus, at time.Time, invoice *entity.Invoice) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotations[id]
	if !ok || !slices.Contains(from, q.Status) {
		return false, nil
	}
	if err := s.insertInvoiceLocked(invoice); err != nil {
		return false, err
	}
	applyTransition(q, enum.QuotationStatusAccepted, at)
	return true, nil
}

func applyTransition(q *entity.Quotation, to enum.QuotationStatus, at time.Time) {
	stamp := at
	q.Status = to
	q.UpdatedAt = at
	switch to {
	case enum.QuotationStatusSent:
		q.SentAt = &stamp
	case enum.QuotationStatusAccepted:
		q.AcceptedAt = &stamp
	case enum.QuotationStatusRejected:
		q.RejectedAt = &stamp
	}
}
