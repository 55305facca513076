package service

import (
	"context"
	"testing"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateItem(ctx, &entity.CatalogItem{Type: enum.ServiceTypeVehicle, Vehicle: &entity.Vehicle{
		Name:              "Van",
		PassengerCapacity: 0,
		DailyRate:         decimal.NewFromInt(-1),
		AvailabilityMode:  "chauffeur",
	}})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Errors, 3)

	_, err = f.catalog.CreateItem(ctx, &entity.CatalogItem{Type: enum.ServiceTypeHotel})
	assert.ErrorIs(t, err, apperror.ErrMissingRequiredField)

	_, err = f.catalog.CreateItem(ctx, &entity.CatalogItem{Type: "boat"})
	assert.ErrorIs(t, err, apperror.ErrUnknownServiceType)

	_, err = f.catalog.CreateItem(ctx, &entity.CatalogItem{Type: enum.ServiceTypeTransfer, Transfer: &entity.TransferRoute{
		Pickup: "Kandy", DropOff: "Ella", Price: decimal.NewFromInt(60), VehicleID: 404,
	}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCatalogReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.catalog.GetItem(ctx, enum.ServiceTypeTransfer, f.transferID)
	require.NoError(t, err)
	require.NotNil(t, item.Transfer.Vehicle)
	assert.Equal(t, "Toyota Prius", item.Transfer.Vehicle.Name)
	assert.True(t, item.Transfer.Active)

	_, err = f.catalog.GetItem(ctx, enum.ServiceTypeHotel, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	items, total, err := f.catalog.ListItems(ctx, enum.ServiceTypeTour, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Cultural Triangle", items[0].Name())
}
