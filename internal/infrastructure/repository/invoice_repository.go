package repository

import (
	"context"
	"errors"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByQuotationReference(ctx context.Context, reference string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "quotation_reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR quotation_reference ILIKE ? OR customer_name ILIKE ?", like, like, like)
	}

	if params.Status != nil {
		query = query.Scopes(InvoiceStatusScope(*params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Scopes(Paginate(params.Pagination), SortBy("created_at", "desc")).
		Find(&invoices).Error

	return invoices, total, err
}

// AddPayment atomically increments paid_amount only if the result stays within the total.
// Uses: UPDATE invoices SET paid_amount = paid_amount + ? WHERE id = ? AND paid_amount + ? <= total_amount + ?
func (r *invoiceRepository) AddPayment(ctx context.Context, id uint, payment domainRepo.InvoicePayment, tolerance int64) (bool, error) {
	updates := map[string]interface{}{
		"paid_amount":  gorm.Expr("paid_amount + ?", payment.Amount),
		"payment_type": payment.Type,
		"payment_date": payment.Date,
	}
	if payment.Reference != nil {
		updates["payment_reference"] = *payment.Reference
	}
	if payment.Notes != nil {
		updates["notes"] = *payment.Notes
	}

	result := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND paid_amount + ? <= total_amount + ?", id, payment.Amount, tolerance).
		Updates(updates)

	if result.Error != nil {
		return false, result.Error
	}

	// No rows affected means the payment would overshoot the total
	return result.RowsAffected > 0, nil
}
