package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService manages tour packages, vehicles, hotels and transfer routes
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateItem validates and stores a catalog item
func (s *CatalogService) CreateItem(ctx context.Context, item *entity.CatalogItem) (*entity.CatalogItem, error) {
	if !item.Type.IsValid() {
		return nil, apperror.NewUnknownServiceTypeError(string(item.Type))
	}

	var fieldErrors []apperror.FieldError
	check := func(ok bool, field, message string) {
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
		}
	}

	switch item.Type {
	case enum.ServiceTypeTour:
		if item.Tour == nil {
			return nil, apperror.NewMissingRequiredFieldError("tour")
		}
		check(strings.TrimSpace(item.Tour.Name) != "", "name", "is required")
		check(item.Tour.DurationDays >= 1, "duration_days", "must be at least 1")
		check(notNegative(item.Tour.PricePerPerson), "price_per_person", "must not be negative")
		check(len(item.Tour.Itinerary) > 0, "itinerary", "is required")
	case enum.ServiceTypeVehicle:
		if item.Vehicle == nil {
			return nil, apperror.NewMissingRequiredFieldError("vehicle")
		}
		check(strings.TrimSpace(item.Vehicle.Name) != "", "name", "is required")
		check(item.Vehicle.PassengerCapacity >= 1, "passenger_capacity", "must be at least 1")
		check(notNegative(item.Vehicle.DailyRate), "daily_rate", "must not be negative")
		check(notNegative(item.Vehicle.ExtraKmRate), "extra_km_rate", "must not be negative")
		check(item.Vehicle.AvailabilityMode.IsValid(), "availability_mode", "must be self_drive, with_driver or both")
	case enum.ServiceTypeHotel:
		if item.Hotel == nil {
			return nil, apperror.NewMissingRequiredFieldError("hotel")
		}
		check(strings.TrimSpace(item.Hotel.Name) != "", "name", "is required")
		check(strings.TrimSpace(item.Hotel.Location) != "", "location", "is required")
		check(notNegative(item.Hotel.NightlyRate), "nightly_rate", "must not be negative")
	case enum.ServiceTypeTransfer:
		if item.Transfer == nil {
			return nil, apperror.NewMissingRequiredFieldError("transfer")
		}
		check(strings.TrimSpace(item.Transfer.Pickup) != "", "pickup", "is required")
		check(strings.TrimSpace(item.Transfer.DropOff) != "", "drop_off", "is required")
		check(notNegative(item.Transfer.Price), "price", "must not be negative")
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	// New items are always bookable
	switch item.Type {
	case enum.ServiceTypeTour:
		item.Tour.Active = true
	case enum.ServiceTypeVehicle:
		item.Vehicle.Active = true
	case enum.ServiceTypeHotel:
		item.Hotel.Active = true
	case enum.ServiceTypeTransfer:
		item.Transfer.Active = true
	}

	if item.Type == enum.ServiceTypeTransfer {
		vehicle, err := s.catalogRepo.Lookup(ctx, enum.ServiceTypeVehicle, item.Transfer.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("lookup transfer vehicle: %w", err)
		}
		if vehicle == nil {
			return nil, apperror.NewNotFoundError("Vehicle")
		}
		item.Transfer.Vehicle = vehicle.Vehicle
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create catalog item: %w", err)
	}
	return item, nil
}

// GetItem retrieves one active catalog item
func (s *CatalogService) GetItem(ctx context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error) {
	if !serviceType.IsValid() {
		return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
	}
	item, err := s.catalogRepo.Lookup(ctx, serviceType, id)
	if err != nil {
		return nil, fmt.Errorf("lookup catalog item: %w", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("%s %d", serviceType, id))
	}
	return item, nil
}

// ListItems retrieves catalog items of one type with pagination
func (s *CatalogService) ListItems(ctx context.Context, serviceType enum.ServiceType, params *pagination.PaginationParams) ([]entity.CatalogItem, int64, error) {
	if !serviceType.IsValid() {
		return nil, 0, apperror.NewUnknownServiceTypeError(string(serviceType))
	}
	items, total, err := s.catalogRepo.List(ctx, serviceType, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog: %w", err)
	}
	return items, total, nil
}

func notNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}
