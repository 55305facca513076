package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
)

// AdminUserRepository defines the interface for back-office account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *entity.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
