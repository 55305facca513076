package repository

import (
	"context"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

// CatalogRepository reads and writes tour packages, vehicles, hotels and
// transfer routes behind a single (service_type, id) lookup
type CatalogRepository interface {
	// Lookup returns nil, nil when no active item exists
	Lookup(ctx context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error)
	Create(ctx context.Context, item *entity.CatalogItem) error
	List(ctx context.Context, serviceType enum.ServiceType, params *pagination.PaginationParams) ([]entity.CatalogItem, int64, error)
}
