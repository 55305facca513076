package enum

// AvailabilityMode describes how a rental vehicle may be hired
type AvailabilityMode string

const (
	AvailabilitySelfDrive  AvailabilityMode = "self_drive"
	AvailabilityWithDriver AvailabilityMode = "with_driver"
	AvailabilityBoth       AvailabilityMode = "both"
)

// IsValid reports whether m is a supported availability mode
func (m AvailabilityMode) IsValid() bool {
	switch m {
	case AvailabilitySelfDrive, AvailabilityWithDriver, AvailabilityBoth:
		return true
	}
	return false
}
