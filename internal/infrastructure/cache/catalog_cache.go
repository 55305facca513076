package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

// CatalogRepository is a read-through cache in front of another
// CatalogRepository. Redis failures are logged and the lookup falls back to
// the wrapped repository.
type CatalogRepository struct {
	next   domainRepo.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogRepository wraps next with a Redis cache
func NewCatalogRepository(next domainRepo.CatalogRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func catalogKey(serviceType enum.ServiceType, id uint) string {
	return fmt.Sprintf("catalog:%s:%d", serviceType, id)
}

// Lookup serves from Redis when possible. Misses are not cached.
func (r *CatalogRepository) Lookup(ctx context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error) {
	key := catalogKey(serviceType, id)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var item entity.CatalogItem
		if jsonErr := json.Unmarshal(raw, &item); jsonErr == nil {
			return &item, nil
		}
		r.logger.Warn("catalog cache entry unreadable", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("catalog cache get failed", slog.String("key", key), slog.Any("error", err))
	}

	item, err := r.next.Lookup(ctx, serviceType, id)
	if err != nil || item == nil {
		return item, err
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return item, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("catalog cache set failed", slog.String("key", key), slog.Any("error", err))
	}
	return item, nil
}

// Create writes through and drops any stale entry for the new id
func (r *CatalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	if err := r.client.Del(ctx, catalogKey(item.Type, item.ID())).Err(); err != nil {
		r.logger.Warn("catalog cache invalidate failed", slog.Any("error", err))
	}
	return nil
}

// List is not cached
func (r *CatalogRepository) List(ctx context.Context, serviceType enum.ServiceType, params *pagination.PaginationParams) ([]entity.CatalogItem, int64, error) {
	return r.next.List(ctx, serviceType, params)
}
