package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
)

type adminUserRepository struct {
	store *Store
}

// NewAdminUserRepository creates an admin user repository over store
func NewAdminUserRepository(store *Store) domainRepo.AdminUserRepository {
	return &adminUserRepository{store: store}
}

func (r *adminUserRepository) Create(_ context.Context, user *entity.AdminUser) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	s.admins[stored.ID] = &stored
	return nil
}

func (r *adminUserRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.admins[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, nil
}

func (r *adminUserRepository) GetByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.admins {
		if strings.EqualFold(user.Email, email) {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *adminUserRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.admins[id]; ok {
		loginAt := at
		user.LastLoginAt = &loginAt
	}
	return nil
}
