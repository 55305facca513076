package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/apperror"
)

// ServiceDetails is the kind-specific payload attached to a quotation. The set
// of implementations is closed: TourDetails, VehicleDetails, HotelDetails and
// TransferDetails.
type ServiceDetails interface {
	ServiceType() enum.ServiceType
	isServiceDetails()
}

// ItineraryDay is one day of a tour programme
type ItineraryDay struct {
	Day           int     `json:"day"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Image         *string `json:"image,omitempty"`
	Activities    *string `json:"activities,omitempty"`
	Meals         *string `json:"meals,omitempty"`
	Accommodation *string `json:"accommodation,omitempty"`
}

// Occupancy is the guest breakdown of a tour or hotel quotation
type Occupancy struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Guests returns the number of paying guests. Infants travel free.
func (o Occupancy) Guests() int {
	return o.Adults + o.Children
}

// TourDetails describes a tour package quotation
type TourDetails struct {
	PackageName  string         `json:"package_name"`
	DurationDays int            `json:"duration_days"`
	Nights       int            `json:"nights"`
	Itinerary    []ItineraryDay `json:"itinerary"`
	Occupancy    Occupancy      `json:"occupancy"`
}

// VehicleDetails describes a vehicle rental quotation
type VehicleDetails struct {
	VehicleName       string                `json:"vehicle_name"`
	VehicleType       string                `json:"vehicle_type"`
	PassengerCapacity int                   `json:"passenger_capacity"`
	IncludedKmPerDay  int                   `json:"included_km_per_day"`
	ExtraKmRate       string                `json:"extra_km_rate"`
	AvailabilityMode  enum.AvailabilityMode `json:"availability_mode"`
	Description       string                `json:"description,omitempty"`
}

// HotelDetails describes a hotel stay quotation
type HotelDetails struct {
	HotelName  string    `json:"hotel_name"`
	Location   string    `json:"location"`
	PriceTier  string    `json:"price_tier"`
	Facilities []string  `json:"facilities"`
	Occupancy  Occupancy `json:"occupancy"`
}

// TransferDetails describes a single-day point to point transfer
type TransferDetails struct {
	Pickup      string `json:"pickup"`
	DropOff     string `json:"drop_off"`
	Date        string `json:"date"`
	VehicleName string `json:"vehicle_name"`
}

func (*TourDetails) ServiceType() enum.ServiceType     { return enum.ServiceTypeTour }
func (*VehicleDetails) ServiceType() enum.ServiceType  { return enum.ServiceTypeVehicle }
func (*HotelDetails) ServiceType() enum.ServiceType    { return enum.ServiceTypeHotel }
func (*TransferDetails) ServiceType() enum.ServiceType { return enum.ServiceTypeTransfer }

func (*TourDetails) isServiceDetails()     {}
func (*VehicleDetails) isServiceDetails()  {}
func (*HotelDetails) isServiceDetails()    {}
func (*TransferDetails) isServiceDetails() {}

// DecodeServiceDetails unmarshals data into the variant selected by serviceType
func DecodeServiceDetails(serviceType enum.ServiceType, data []byte) (ServiceDetails, error) {
	var details ServiceDetails
	switch serviceType {
	case enum.ServiceTypeTour:
		details = &TourDetails{}
	case enum.ServiceTypeVehicle:
		details = &VehicleDetails{}
	case enum.ServiceTypeHotel:
		details = &HotelDetails{}
	case enum.ServiceTypeTransfer:
		details = &TransferDetails{}
	default:
		return nil, apperror.NewUnknownServiceTypeError(string(serviceType))
	}
	if err := json.Unmarshal(data, details); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", serviceType, err)
	}
	return details, nil
}

// ServiceDetailsJSON stores a ServiceDetails variant in a jsonb column as
// {"type": "...", "data": {...}} and renders only the payload in API output.
type ServiceDetailsJSON struct {
	ServiceDetails
}

type serviceDetailsEnvelope struct {
	Type enum.ServiceType `json:"type"`
	Data json.RawMessage  `json:"data"`
}

// Value implements driver.Valuer
func (c ServiceDetailsJSON) Value() (driver.Value, error) {
	if c.ServiceDetails == nil {
		return nil, nil
	}
	data, err := json.Marshal(c.ServiceDetails)
	if err != nil {
		return nil, err
	}
	envelope, err := json.Marshal(serviceDetailsEnvelope{Type: c.ServiceType(), Data: data})
	if err != nil {
		return nil, err
	}
	return string(envelope), nil
}

// Scan implements sql.Scanner
func (c *ServiceDetailsJSON) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		c.ServiceDetails = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ServiceDetailsJSON", value)
	}

	var envelope serviceDetailsEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode service details envelope: %w", err)
	}
	details, err := DecodeServiceDetails(envelope.Type, envelope.Data)
	if err != nil {
		return err
	}
	c.ServiceDetails = details
	return nil
}

// MarshalJSON renders the payload without the storage envelope
func (c ServiceDetailsJSON) MarshalJSON() ([]byte, error) {
	if c.ServiceDetails == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.ServiceDetails)
}
