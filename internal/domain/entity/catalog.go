package entity

import (
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TourPackage is a multi-day tour priced per paying guest
type TourPackage struct {
	ID             uint                              `gorm:"primaryKey" json:"id"`
	Name           string                            `gorm:"size:255;not null" json:"name"`
	DurationDays   int                               `gorm:"not null" json:"duration_days"`
	PricePerPerson decimal.Decimal                   `gorm:"type:decimal(15,2);not null" json:"price_per_person"`
	Description    *string                           `gorm:"type:text" json:"description,omitempty"`
	Itinerary      datatypes.JSONSlice[ItineraryDay] `gorm:"type:jsonb" json:"itinerary"`
	Active         bool                              `gorm:"default:true" json:"active"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}

// TableName returns the table name for the TourPackage model
func (TourPackage) TableName() string {
	return "tour_packages"
}

// Vehicle is a rental vehicle priced per day
type Vehicle struct {
	ID                uint                  `gorm:"primaryKey" json:"id"`
	Name              string                `gorm:"size:255;not null" json:"name"`
	Category          string                `gorm:"size:100;not null" json:"category"`
	PassengerCapacity int                   `gorm:"not null" json:"passenger_capacity"`
	IncludedKmPerDay  int                   `gorm:"default:0" json:"included_km_per_day"`
	ExtraKmRate       decimal.Decimal       `gorm:"type:decimal(15,2);default:0" json:"extra_km_rate"`
	DailyRate         decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"daily_rate"`
	AvailabilityMode  enum.AvailabilityMode `gorm:"size:20;not null" json:"availability_mode"`
	Description       *string               `gorm:"type:text" json:"description,omitempty"`
	Active            bool                  `gorm:"default:true" json:"active"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// Hotel is an accommodation priced per night
type Hotel struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Location    string          `gorm:"size:255;not null" json:"location"`
	PriceTier   string          `gorm:"size:50" json:"price_tier"`
	Facilities  string          `gorm:"type:text" json:"facilities"` // comma separated
	NightlyRate decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"nightly_rate"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Active      bool            `gorm:"default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for the Hotel model
func (Hotel) TableName() string {
	return "hotels"
}

// TransferRoute is a fixed-price point to point transfer
type TransferRoute struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Pickup    string          `gorm:"size:255;not null" json:"pickup"`
	DropOff   string          `gorm:"size:255;not null" json:"drop_off"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	VehicleID uint            `gorm:"not null;index" json:"vehicle_id"`
	Active    bool            `gorm:"default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

// TableName returns the table name for the TransferRoute model
func (TransferRoute) TableName() string {
	return "transfer_routes"
}

// CatalogItem is raw catalog data for one (service_type, service_id) pair.
// Exactly one of the pointers matching Type is set.
type CatalogItem struct {
	Type     enum.ServiceType `json:"type"`
	Tour     *TourPackage     `json:"tour,omitempty"`
	Vehicle  *Vehicle         `json:"vehicle,omitempty"`
	Hotel    *Hotel           `json:"hotel,omitempty"`
	Transfer *TransferRoute   `json:"transfer,omitempty"`
}

// ID returns the catalog id of the wrapped item
func (c *CatalogItem) ID() uint {
	switch c.Type {
	case enum.ServiceTypeTour:
		if c.Tour != nil {
			return c.Tour.ID
		}
	case enum.ServiceTypeVehicle:
		if c.Vehicle != nil {
			return c.Vehicle.ID
		}
	case enum.ServiceTypeHotel:
		if c.Hotel != nil {
			return c.Hotel.ID
		}
	case enum.ServiceTypeTransfer:
		if c.Transfer != nil {
			return c.Transfer.ID
		}
	}
	return 0
}

// Name returns a display name for the wrapped item
func (c *CatalogItem) Name() string {
	switch c.Type {
	case enum.ServiceTypeTour:
		if c.Tour != nil {
			return c.Tour.Name
		}
	case enum.ServiceTypeVehicle:
		if c.Vehicle != nil {
			return c.Vehicle.Name
		}
	case enum.ServiceTypeHotel:
		if c.Hotel != nil {
			return c.Hotel.Name
		}
	case enum.ServiceTypeTransfer:
		if c.Transfer != nil {
			return c.Transfer.Pickup + " - " + c.Transfer.DropOff
		}
	}
	return ""
}

// UnitPrice returns the catalog rate: per person for tours, per day for
// vehicles, per night for hotels and flat for transfers.
func (c *CatalogItem) UnitPrice() decimal.Decimal {
	switch c.Type {
	case enum.ServiceTypeTour:
		if c.Tour != nil {
			return c.Tour.PricePerPerson
		}
	case enum.ServiceTypeVehicle:
		if c.Vehicle != nil {
			return c.Vehicle.DailyRate
		}
	case enum.ServiceTypeHotel:
		if c.Hotel != nil {
			return c.Hotel.NightlyRate
		}
	case enum.ServiceTypeTransfer:
		if c.Transfer != nil {
			return c.Transfer.Price
		}
	}
	return decimal.Zero
}
