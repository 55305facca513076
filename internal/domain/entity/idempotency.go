package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests so a retried accept or payment
// replays the first response instead of running twice
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_scope_key;size:255;not null"`
	Scope        string    `gorm:"uniqueIndex:idx_idempotency_scope_key;size:255;not null"` // admin id or public:<client ip>
	Endpoint     string    `gorm:"size:255;not null"`                                        // e.g. "POST /api/v1/quotations/:reference/accept"
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired at now
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
