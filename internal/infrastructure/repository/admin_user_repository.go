package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"gorm.io/gorm"
)

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) domainRepo.AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(ctx context.Context, user *entity.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	var user entity.AdminUser
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var user entity.AdminUser
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *adminUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
