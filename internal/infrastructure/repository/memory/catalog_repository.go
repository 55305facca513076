package memory

import (
	"context"
	"sort"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

type catalogRepository struct {
	store *Store
}

// NewCatalogRepository creates a catalog repository over store
func NewCatalogRepository(store *Store) domainRepo.CatalogRepository {
	return &catalogRepository{store: store}
}

func (r *catalogRepository) Lookup(_ context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch serviceType {
	case enum.ServiceTypeTour:
		if tour, ok := s.tours[id]; ok && tour.Active {
			out := *tour
			return &entity.CatalogItem{Type: serviceType, Tour: &out}, nil
		}
	case enum.ServiceTypeVehicle:
		if vehicle, ok := s.vehicles[id]; ok && vehicle.Active {
			out := *vehicle
			return &entity.CatalogItem{Type: serviceType, Vehicle: &out}, nil
		}
	case enum.ServiceTypeHotel:
		if hotel, ok := s.hotels[id]; ok && hotel.Active {
			out := *hotel
			return &entity.CatalogItem{Type: serviceType, Hotel: &out}, nil
		}
	case enum.ServiceTypeTransfer:
		if route, ok := s.transfers[id]; ok && route.Active {
			out := s.transferWithVehicleLocked(route)
			return &entity.CatalogItem{Type: serviceType, Transfer: &out}, nil
		}
	default:
		return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
	}
	return nil, nil
}

func (s *Store) transferWithVehicleLocked(route *entity.TransferRoute) entity.TransferRoute {
	out := *route
	out.Vehicle = nil
	if vehicle, ok := s.vehicles[route.VehicleID]; ok {
		v := *vehicle
		out.Vehicle = &v
	}
	return out
}

func (r *catalogRepository) Create(_ context.Context, item *entity.CatalogItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	switch item.Type {
	case enum.ServiceTypeTour:
		item.Tour.ID = s.nextID("tours")
		item.Tour.CreatedAt, item.Tour.UpdatedAt = now, now
		stored := *item.Tour
		s.tours[stored.ID] = &stored
	case enum.ServiceTypeVehicle:
		item.Vehicle.ID = s.nextID("vehicles")
		item.Vehicle.CreatedAt, item.Vehicle.UpdatedAt = now, now
		stored := *item.Vehicle
		s.vehicles[stored.ID] = &stored
	case enum.ServiceTypeHotel:
		item.Hotel.ID = s.nextID("hotels")
		item.Hotel.CreatedAt, item.Hotel.UpdatedAt = now, now
		stored := *item.Hotel
		s.hotels[stored.ID] = &stored
	case enum.ServiceTypeTransfer:
		item.Transfer.ID = s.nextID("transfers")
		item.Transfer.CreatedAt, item.Transfer.UpdatedAt = now, now
		stored := *item.Transfer
		stored.Vehicle = nil
		s.transfers[stored.ID] = &stored
	default:
		return apperror.NewUnknownServiceTypeError(string(item.Type))
	}
	return nil
}

func (r *catalogRepository) List(_ context.Context, serviceType enum.ServiceType, params *pagination.PaginationParams) ([]entity.CatalogItem, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entity.CatalogItem
	switch serviceType {
	case enum.ServiceTypeTour:
		for _, tour := range s.tours {
			out := *tour
			items = append(items, entity.CatalogItem{Type: serviceType, Tour: &out})
		}
	case enum.ServiceTypeVehicle:
		for _, vehicle := range s.vehicles {
			out := *vehicle
			items = append(items, entity.CatalogItem{Type: serviceType, Vehicle: &out})
		}
	case enum.ServiceTypeHotel:
		for _, hotel := range s.hotels {
			out := *hotel
			items = append(items, entity.CatalogItem{Type: serviceType, Hotel: &out})
		}
	case enum.ServiceTypeTransfer:
		for _, route := range s.transfers {
			out := s.transferWithVehicleLocked(route)
			items = append(items, entity.CatalogItem{Type: serviceType, Transfer: &out})
		}
	default:
		return nil, 0, apperror.NewUnknownServiceTypeError(string(serviceType))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name() != items[j].Name() {
			return items[i].Name() < items[j].Name()
		}
		return items[i].ID() < items[j].ID()
	})

	return page(items, params), int64(len(items)), nil
}
