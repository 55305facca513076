package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReference returns a customer-facing identifier such as QT-1A2B3C4D.
// The suffix is eight upper-case hex characters of a random UUID.
func GenerateReference(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}

// NewRequestID generates an id for request correlation
func NewRequestID() string {
	return uuid.New().String()
}
