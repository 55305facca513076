package repository

import (
	"context"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and scope
	GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) error
}
