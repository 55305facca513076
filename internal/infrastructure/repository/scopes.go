package repository

import (
	"strings"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope applying offset and limit from params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// SortBy returns a GORM scope ordering by column when it is in allowed.
// Unknown columns fall back to created_at so request input never reaches SQL.
func SortBy(column, order string, allowed ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sortBy := "created_at"
		for _, a := range allowed {
			if column == a {
				sortBy = a
				break
			}
		}
		sortOrder := "DESC"
		if strings.EqualFold(order, "asc") {
			sortOrder = "ASC"
		}
		return db.Order(sortBy + " " + sortOrder + ", id " + sortOrder)
	}
}

// InvoiceStatusScope filters invoices by their derived settlement status
func InvoiceStatusScope(status enum.InvoiceStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case enum.InvoiceStatusPaid:
			return db.Where("paid_amount >= total_amount")
		case enum.InvoiceStatusPartial:
			return db.Where("paid_amount > 0 AND paid_amount < total_amount")
		case enum.InvoiceStatusUnpaid:
			return db.Where("paid_amount <= 0 AND paid_amount < total_amount")
		}
		return db
	}
}
