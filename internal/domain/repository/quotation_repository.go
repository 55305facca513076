package repository

import (
	"context"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations.
// Quotations are never deleted, so there is no Delete.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uint) (*entity.Quotation, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quotation, error)
	List(ctx context.Context, params *QuotationFilterParams) ([]entity.Quotation, int64, error)

	// RecordView increments view_count, sets first_viewed_at if it is still
	// empty and moves a sent quotation to viewed, all in one atomic write.
	RecordView(ctx context.Context, id uint, at time.Time) error

	// TransitionStatus writes status `to` only when the stored status is one
	// of `from`. It reports whether the row changed.
	TransitionStatus(ctx context.Context, id uint, from []enum.QuotationStatus, to enum.QuotationStatus, at time.Time) (bool, error)

	// Accept moves the quotation to accepted when its stored status is one of
	// `from` and inserts invoice in the same transaction. When no row changed
	// the invoice is not inserted and false is returned.
	Accept(ctx context.Context, id uint, from []enum.QuotationStatus, at time.Time, invoice *entity.Invoice) (bool, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.QuotationStatus
	ServiceType *enum.ServiceType
	SortBy      string
	SortOrder   string
}
