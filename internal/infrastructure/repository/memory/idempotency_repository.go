package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
)

type idempotencyRepository struct {
	store *Store
}

// NewIdempotencyRepository creates an idempotency repository over store
func NewIdempotencyRepository(store *Store) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{store: store}
}

func idempotencyKey(key, scope string) string {
	return scope + "\x00" + key
}

func (r *idempotencyRepository) GetByKey(_ context.Context, key, scope string) (*entity.IdempotencyKey, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if ikey, ok := s.idempotency[idempotencyKey(key, scope)]; ok {
		out := *ikey
		return &out, nil
	}
	return nil, nil
}

func (r *idempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyKey(ikey.Key, ikey.Scope)
	if _, exists := s.idempotency[k]; exists {
		return ErrDuplicateKey
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	ikey.CreatedAt = s.now()

	stored := *ikey
	s.idempotency[k] = &stored
	return nil
}

func (r *idempotencyRepository) DeleteExpired(_ context.Context, before time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ikey := range s.idempotency {
		if ikey.ExpiresAt.Before(before) {
			delete(s.idempotency, k)
		}
	}
	return nil
}
