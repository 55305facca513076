package request

import (
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TourPackageRequest creates a tour package
type TourPackageRequest struct {
	Name           string                `json:"name" binding:"required"`
	DurationDays   int                   `json:"duration_days" binding:"required,min=1"`
	PricePerPerson decimal.Decimal       `json:"price_per_person"`
	Description    *string               `json:"description"`
	Itinerary      []entity.ItineraryDay `json:"itinerary" binding:"required,min=1"`
}

// VehicleRequest creates a rental vehicle
type VehicleRequest struct {
	Name              string          `json:"name" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	PassengerCapacity int             `json:"passenger_capacity" binding:"required,min=1"`
	IncludedKmPerDay  int             `json:"included_km_per_day" binding:"min=0"`
	ExtraKmRate       decimal.Decimal `json:"extra_km_rate"`
	DailyRate         decimal.Decimal `json:"daily_rate"`
	AvailabilityMode  string          `json:"availability_mode" binding:"required"`
	Description       *string         `json:"description"`
}

// HotelRequest creates a hotel
type HotelRequest struct {
	Name        string          `json:"name" binding:"required"`
	Location    string          `json:"location" binding:"required"`
	PriceTier   string          `json:"price_tier"`
	Facilities  string          `json:"facilities"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Description *string         `json:"description"`
}

// TransferRouteRequest creates a transfer route
type TransferRouteRequest struct {
	Pickup    string          `json:"pickup" binding:"required"`
	DropOff   string          `json:"drop_off" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	VehicleID uint            `json:"vehicle_id" binding:"required"`
}
