package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type lookupCounter struct {
	domainRepo.CatalogRepository
	lookups int
}

func (c *lookupCounter) Lookup(ctx context.Context, serviceType enum.ServiceType, id uint) (*entity.CatalogItem, error) {
	c.lookups++
	return c.CatalogRepository.Lookup(ctx, serviceType, id)
}

func newTestCache(t *testing.T) (*CatalogRepository, *miniredis.Miniredis, *lookupCounter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	counter := &lookupCounter{CatalogRepository: memory.NewCatalogRepository(memory.NewStore())}
	return NewCatalogRepository(counter, client, time.Minute, nil), mr, counter
}

func TestLookupIsReadThrough(t *testing.T) {
	repo, mr, counter := newTestCache(t)
	ctx := context.Background()

	item := &entity.CatalogItem{Type: enum.ServiceTypeTour, Tour: &entity.TourPackage{
		Name:           "Southern Coast",
		DurationDays:   4,
		PricePerPerson: decimal.RequireFromString("450.50"),
		Itinerary:      datatypes.JSONSlice[entity.ItineraryDay]{{Day: 1, Title: "Galle"}},
		Active:         true,
	}}
	require.NoError(t, repo.Create(ctx, item))

	first, err := repo.Lookup(ctx, enum.ServiceTypeTour, item.ID())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, mr.Exists("catalog:tour:1"))

	second, err := repo.Lookup(ctx, enum.ServiceTypeTour, item.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, counter.lookups)
	assert.Equal(t, "Southern Coast", second.Name())
	assert.True(t, second.UnitPrice().Equal(decimal.RequireFromString("450.50")))
	assert.Equal(t, "Galle", second.Tour.Itinerary[0].Title)
}

func TestLookupMissIsNotCached(t *testing.T) {
	repo, mr, counter := newTestCache(t)

	item, err := repo.Lookup(context.Background(), enum.ServiceTypeHotel, 99)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.False(t, mr.Exists("catalog:hotel:99"))
	assert.Equal(t, 1, counter.lookups)
}

func TestLookupFallsBackWhenRedisIsDown(t *testing.T) {
	repo, mr, counter := newTestCache(t)
	ctx := context.Background()

	item := &entity.CatalogItem{Type: enum.ServiceTypeHotel, Hotel: &entity.Hotel{
		Name: "Kandy Hills", Location: "Kandy", NightlyRate: decimal.NewFromInt(80), Active: true,
	}}
	require.NoError(t, repo.Create(ctx, item))
	mr.Close()

	got, err := repo.Lookup(ctx, enum.ServiceTypeHotel, item.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kandy Hills", got.Name())
	assert.Equal(t, 1, counter.lookups)
}
