package repository

import (
	"context"
	"errors"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uint) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) GetByReference(ctx context.Context, reference string) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).First(&quotation, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) List(ctx context.Context, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quotation{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("reference ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?", like, like, like)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ServiceType != nil {
		query = query.Where("service_type = ?", *params.ServiceType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Scopes(Paginate(params.Pagination), SortBy(params.SortBy, params.SortOrder, "created_at", "valid_until", "start_date", "total_amount")).
		Find(&quotations).Error

	return quotations, total, err
}

// RecordView runs a single UPDATE so concurrent readers never lose a count:
// UPDATE quotations SET view_count = view_count + 1,
// first_viewed_at = COALESCE(first_viewed_at, ?), status = CASE ... END WHERE id = ?
func (r *quotationRepository) RecordView(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Quotation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count":      gorm.Expr("view_count + 1"),
			"first_viewed_at": gorm.Expr("COALESCE(first_viewed_at, ?)", at),
			"status":          gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END", enum.QuotationStatusSent, enum.QuotationStatusViewed),
			"updated_at":      at,
		}).Error
}

func (r *quotationRepository) TransitionStatus(ctx context.Context, id uint, from []enum.QuotationStatus, to enum.QuotationStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Quotation{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(transitionUpdates(to, at))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Accept uses: UPDATE quotations SET status = 'accepted' WHERE id = ? AND status IN (...)
// followed by the invoice insert, both inside one transaction. Under concurrent
// accepts only one UPDATE matches, so only one invoice is written.
func (r *quotationRepository) Accept(ctx context.Context, id uint, from []enum.QuotationStatus, at time.Time, invoice *entity.Invoice) (bool, error) {
	accepted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Quotation{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(transitionUpdates(enum.QuotationStatusAccepted, at))

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		accepted = true
		return tx.Create(invoice).Error
	})
	if err != nil {
		return false, err
	}

	return accepted, nil
}

func transitionUpdates(to enum.QuotationStatus, at time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case enum.QuotationStatusSent:
		updates["sent_at"] = at
	case enum.QuotationStatusAccepted:
		updates["accepted_at"] = at
	case enum.QuotationStatusRejected:
		updates["rejected_at"] = at
	}
	return updates
}
