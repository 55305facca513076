package enum

import (
	"database/sql/driver"
	"fmt"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusViewed   QuotationStatus = "viewed"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	// QuotationStatusExpired is only ever reported, never stored.
	QuotationStatusExpired QuotationStatus = "expired"
)

var quotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusViewed,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusExpired,
}

func (s QuotationStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s QuotationStatus) IsValid() bool {
	for _, known := range quotationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status can no longer change or expire
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusAccepted || s == QuotationStatusRejected
}

// ParseQuotationStatus converts a raw string into a QuotationStatus
func ParseQuotationStatus(raw string) (QuotationStatus, error) {
	s := QuotationStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown quotation status %q", raw)
	}
	return s, nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = QuotationStatusDraft
	case string:
		*s = QuotationStatus(v)
	case []byte:
		*s = QuotationStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into QuotationStatus", value)
	}
	return nil
}
