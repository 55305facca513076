// Package servicedetail turns raw catalog data into the kind-specific
// ServiceDetails attached to a quotation. It never reads the catalog itself.
package servicedetail

import (
	"sort"
	"strings"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/apperror"
)

// Request carries the quotation inputs the resolver needs besides the catalog item
type Request struct {
	Occupancy entity.Occupancy
	StartDate time.Time
	// DurationDays overrides the catalog duration of a tour when positive
	DurationDays int
}

// Resolve builds the details variant for serviceType from item
func Resolve(serviceType enum.ServiceType, item *entity.CatalogItem, req Request) (entity.ServiceDetails, error) {
	if !serviceType.IsValid() {
		return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
	}
	if item == nil || item.Type != serviceType {
		return nil, apperror.NewMissingRequiredFieldError("service_id")
	}

	switch serviceType {
	case enum.ServiceTypeTour:
		return resolveTour(item.Tour, req)
	case enum.ServiceTypeVehicle:
		return resolveVehicle(item.Vehicle)
	case enum.ServiceTypeHotel:
		return resolveHotel(item.Hotel, req)
	case enum.ServiceTypeTransfer:
		return resolveTransfer(item.Transfer, req)
	}
	return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
}

func resolveTour(tour *entity.TourPackage, req Request) (entity.ServiceDetails, error) {
	if tour == nil {
		return nil, apperror.NewMissingRequiredFieldError("service_id")
	}
	if strings.TrimSpace(tour.Name) == "" {
		return nil, apperror.NewMissingRequiredFieldError("package_name")
	}
	if len(tour.Itinerary) == 0 {
		return nil, apperror.NewMissingRequiredFieldError("itinerary")
	}
	if err := requireAdults(req.Occupancy); err != nil {
		return nil, err
	}

	duration := tour.DurationDays
	if req.DurationDays > 0 {
		duration = req.DurationDays
	}
	if duration < 1 {
		return nil, apperror.NewMissingRequiredFieldError("duration_days")
	}

	itinerary := make([]entity.ItineraryDay, len(tour.Itinerary))
	copy(itinerary, tour.Itinerary)
	sort.SliceStable(itinerary, func(i, j int) bool {
		return itinerary[i].Day < itinerary[j].Day
	})

	return &entity.TourDetails{
		PackageName:  tour.Name,
		DurationDays: duration,
		Nights:       duration - 1,
		Itinerary:    itinerary,
		Occupancy:    req.Occupancy,
	}, nil
}

func resolveVehicle(vehicle *entity.Vehicle) (entity.ServiceDetails, error) {
	if vehicle == nil {
		return nil, apperror.NewMissingRequiredFieldError("service_id")
	}
	if strings.TrimSpace(vehicle.Name) == "" {
		return nil, apperror.NewMissingRequiredFieldError("vehicle_name")
	}
	if !vehicle.AvailabilityMode.IsValid() {
		return nil, apperror.NewMissingRequiredFieldError("availability_mode")
	}

	details := &entity.VehicleDetails{
		VehicleName:       vehicle.Name,
		VehicleType:       vehicle.Category,
		PassengerCapacity: vehicle.PassengerCapacity,
		IncludedKmPerDay:  vehicle.IncludedKmPerDay,
		ExtraKmRate:       vehicle.ExtraKmRate.StringFixed(2),
		AvailabilityMode:  vehicle.AvailabilityMode,
	}
	if vehicle.Description != nil {
		details.Description = *vehicle.Description
	}
	return details, nil
}

func resolveHotel(hotel *entity.Hotel, req Request) (entity.ServiceDetails, error) {
	if hotel == nil {
		return nil, apperror.NewMissingRequiredFieldError("service_id")
	}
	if strings.TrimSpace(hotel.Name) == "" {
		return nil, apperror.NewMissingRequiredFieldError("hotel_name")
	}
	if strings.TrimSpace(hotel.Location) == "" {
		return nil, apperror.NewMissingRequiredFieldError("location")
	}
	if err := requireAdults(req.Occupancy); err != nil {
		return nil, err
	}

	return &entity.HotelDetails{
		HotelName:  hotel.Name,
		Location:   hotel.Location,
		PriceTier:  hotel.PriceTier,
		Facilities: ParseFacilities(hotel.Facilities),
		Occupancy:  req.Occupancy,
	}, nil
}

func resolveTransfer(route *entity.TransferRoute, req Request) (entity.ServiceDetails, error) {
	if route == nil {
		return nil, apperror.NewMissingRequiredFieldError("service_id")
	}
	if strings.TrimSpace(route.Pickup) == "" {
		return nil, apperror.NewMissingRequiredFieldError("pickup")
	}
	if strings.TrimSpace(route.DropOff) == "" {
		return nil, apperror.NewMissingRequiredFieldError("drop_off")
	}
	if req.StartDate.IsZero() {
		return nil, apperror.NewMissingRequiredFieldError("start_date")
	}

	details := &entity.TransferDetails{
		Pickup:  route.Pickup,
		DropOff: route.DropOff,
		Date:    req.StartDate.Format(entity.DateLayout),
	}
	if route.Vehicle != nil {
		details.VehicleName = route.Vehicle.Name
	}
	return details, nil
}

func requireAdults(o entity.Occupancy) error {
	if o.Adults < 1 {
		return apperror.NewMissingRequiredFieldError("adults")
	}
	return nil
}

// ParseFacilities splits a comma separated list into trimmed, de-duplicated
// names. The first occurrence wins and blank entries are dropped.
func ParseFacilities(raw string) []string {
	facilities := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		facilities = append(facilities, name)
	}
	return facilities
}
