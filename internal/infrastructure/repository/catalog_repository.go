package repository

import (
	"context"
	"errors"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/pagination"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Lookup(ctx context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error) {
	db := r.db.WithContext(ctx).Where("active = ?", true)
	item := &entity.CatalogItem{Type: serviceType}

	var err error
	switch serviceType {
	case enum.ServiceTypeTour:
		var tour entity.TourPackage
		err = db.First(&tour, "id = ?", id).Error
		item.Tour = &tour
	case enum.ServiceTypeVehicle:
		var vehicle entity.Vehicle
		err = db.First(&vehicle, "id = ?", id).Error
		item.Vehicle = &vehicle
	case enum.ServiceTypeHotel:
		var hotel entity.Hotel
		err = db.First(&hotel, "id = ?", id).Error
		item.Hotel = &hotel
	case enum.ServiceTypeTransfer:
		var route entity.TransferRoute
		err = db.Preload("Vehicle").First(&route, "id = ?", id).Error
		item.Transfer = &route
	default:
		return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	db := r.db.WithContext(ctx)
	switch item.Type {
	case enum.ServiceTypeTour:
		return db.Create(item.Tour).Error
	case enum.ServiceTypeVehicle:
		return db.Create(item.Vehicle).Error
	case enum.ServiceTypeHotel:
		return db.Create(item.Hotel).Error
	case enum.ServiceTypeTransfer:
		return db.Omit("Vehicle").Create(item.Transfer).Error
	}
	return apperror.NewUnknownServiceTypeError(string(item.Type))
}

func (r *catalogRepository) List(ctx context.Context, serviceType enum.ServiceType, params *pagination.PaginationParams) ([]entity.CatalogItem, int64, error) {
	db := r.db.WithContext(ctx)

	switch serviceType {
	case enum.ServiceTypeTour:
		var tours []entity.TourPackage
		total, err := listModels(db, &entity.TourPackage{}, &tours, params)
		items := make([]entity.CatalogItem, 0, len(tours))
		for i := range tours {
			items = append(items, entity.CatalogItem{Type: serviceType, Tour: &tours[i]})
		}
		return items, total, err
	case enum.ServiceTypeVehicle:
		var vehicles []entity.Vehicle
		total, err := listModels(db, &entity.Vehicle{}, &vehicles, params)
		items := make([]entity.CatalogItem, 0, len(vehicles))
		for i := range vehicles {
			items = append(items, entity.CatalogItem{Type: serviceType, Vehicle: &vehicles[i]})
		}
		return items, total, err
	case enum.ServiceTypeHotel:
		var hotels []entity.Hotel
		total, err := listModels(db, &entity.Hotel{}, &hotels, params)
		items := make([]entity.CatalogItem, 0, len(hotels))
		for i := range hotels {
			items = append(items, entity.CatalogItem{Type: serviceType, Hotel: &hotels[i]})
		}
		return items, total, err
	case enum.ServiceTypeTransfer:
		var routes []entity.TransferRoute
		total, err := listModels(db.Preload("Vehicle"), &entity.TransferRoute{}, &routes, params)
		items := make([]entity.CatalogItem, 0, len(routes))
		for i := range routes {
			items = append(items, entity.CatalogItem{Type: serviceType, Transfer: &routes[i]})
		}
		return items, total, err
	}
	return nil, 0, apperror.NewUnknownServiceTypeError(string(serviceType))
}

func listModels(db *gorm.DB, model interface{}, dest interface{}, params *pagination.PaginationParams) (int64, error) {
	var total int64
	query := db.Model(model)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	err := query.Scopes(Paginate(params)).Order("name ASC").Find(dest).Error
	return total, err
}
