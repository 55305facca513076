package enum

import (
	"database/sql/driver"
	"fmt"
)

// ServiceType identifies the kind of travel service a quotation is for.
// The four values are part of the persisted contract.
type ServiceType string

const (
	ServiceTypeTour     ServiceType = "tour"
	ServiceTypeVehicle  ServiceType = "vehicle"
	ServiceTypeHotel    ServiceType = "hotel"
	ServiceTypeTransfer ServiceType = "transfer"
)

// ServiceTypes lists every supported service type
var ServiceTypes = []ServiceType{
	ServiceTypeTour,
	ServiceTypeVehicle,
	ServiceTypeHotel,
	ServiceTypeTransfer,
}

func (t ServiceType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the four supported service types
func (t ServiceType) IsValid() bool {
	for _, known := range ServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOccupancy reports whether quotations of this type carry guest counts
func (t ServiceType) HasOccupancy() bool {
	return t == ServiceTypeTour || t == ServiceTypeHotel
}

func (t ServiceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ServiceType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ServiceType(v)
	case []byte:
		*t = ServiceType(v)
	default:
		return fmt.Errorf("cannot scan %T into ServiceType", value)
	}
	return nil
}
