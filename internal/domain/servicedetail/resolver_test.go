package servicedetail

import (
	"testing"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func tourItem() *entity.CatalogItem {
	return &entity.CatalogItem{
		Type: enum.ServiceTypeTour,
		Tour: &entity.TourPackage{
			ID:             1,
			Name:           "Cultural Triangle",
			DurationDays:   3,
			PricePerPerson: decimal.NewFromInt(500),
			Itinerary: datatypes.JSONSlice[entity.ItineraryDay]{
				{Day: 3, Title: "Kandy"},
				{Day: 1, Title: "Sigiriya"},
				{Day: 2, Title: "Dambulla"},
			},
		},
	}
}

func TestResolveTourSortsItinerary(t *testing.T) {
	item := tourItem()
	details, err := Resolve(enum.ServiceTypeTour, item, Request{Occupancy: entity.Occupancy{Adults: 2, Children: 1}})
	require.NoError(t, err)

	tour, ok := details.(*entity.TourDetails)
	require.True(t, ok)
	assert.Equal(t, "Cultural Triangle", tour.PackageName)
	assert.Equal(t, 3, tour.DurationDays)
	assert.Equal(t, 2, tour.Nights)
	require.Len(t, tour.Itinerary, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{tour.Itinerary[0].Day, tour.Itinerary[1].Day, tour.Itinerary[2].Day})
	assert.Equal(t, "Kandy", item.Tour.Itinerary[0].Title, "catalog data must not be reordered")
}

func TestResolveTourRequiresItineraryAndAdults(t *testing.T) {
	item := tourItem()
	item.Tour.Itinerary = nil
	_, err := Resolve(enum.ServiceTypeTour, item, Request{Occupancy: entity.Occupancy{Adults: 1}})
	require.ErrorIs(t, err, apperror.ErrMissingRequiredField)
	assert.Equal(t, "itinerary", apperror.GetAppError(err).Errors[0].Field)

	_, err = Resolve(enum.ServiceTypeTour, tourItem(), Request{})
	require.ErrorIs(t, err, apperror.ErrMissingRequiredField)
	assert.Equal(t, "adults", apperror.GetAppError(err).Errors[0].Field)
}

func TestResolveHotelFacilities(t *testing.T) {
	item := &entity.CatalogItem{
		Type: enum.ServiceTypeHotel,
		Hotel: &entity.Hotel{
			Name:       "Bentota Beach",
			Location:   "Bentota",
			PriceTier:  "Luxury",
			Facilities: " Pool, Spa ,WiFi,,pool, Gym ",
		},
	}
	details, err := Resolve(enum.ServiceTypeHotel, item, Request{Occupancy: entity.Occupancy{Adults: 2}})
	require.NoError(t, err)

	hotel := details.(*entity.HotelDetails)
	assert.Equal(t, []string{"Pool", "Spa", "WiFi", "Gym"}, hotel.Facilities)
	assert.Equal(t, 2, hotel.Occupancy.Adults)
}

func TestResolveVehicle(t *testing.T) {
	desc := "Air conditioned"
	item := &entity.CatalogItem{
		Type: enum.ServiceTypeVehicle,
		Vehicle: &entity.Vehicle{
			Name:              "Toyota KDH",
			Category:          "Van",
			PassengerCapacity: 9,
			IncludedKmPerDay:  150,
			ExtraKmRate:       decimal.RequireFromString("0.5"),
			AvailabilityMode:  enum.AvailabilityWithDriver,
			Description:       &desc,
		},
	}
	details, err := Resolve(enum.ServiceTypeVehicle, item, Request{})
	require.NoError(t, err)

	vehicle := details.(*entity.VehicleDetails)
	assert.Equal(t, "Van", vehicle.VehicleType)
	assert.Equal(t, "0.50", vehicle.ExtraKmRate)
	assert.Equal(t, enum.AvailabilityWithDriver, vehicle.AvailabilityMode)
	assert.Equal(t, desc, vehicle.Description)

	item.Vehicle.AvailabilityMode = "teleport"
	_, err = Resolve(enum.ServiceTypeVehicle, item, Request{})
	assert.ErrorIs(t, err, apperror.ErrMissingRequiredField)
}

func TestResolveTransferUsesStartDate(t *testing.T) {
	item := &entity.CatalogItem{
		Type: enum.ServiceTypeTransfer,
		Transfer: &entity.TransferRoute{
			Pickup:  "Bandaranaike Airport",
			DropOff: "Negombo",
			Vehicle: &entity.Vehicle{Name: "Toyota Prius"},
		},
	}
	details, err := Resolve(enum.ServiceTypeTransfer, item, Request{StartDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	transfer := details.(*entity.TransferDetails)
	assert.Equal(t, "2026-06-02", transfer.Date)
	assert.Equal(t, "Toyota Prius", transfer.VehicleName)

	_, err = Resolve(enum.ServiceTypeTransfer, item, Request{})
	require.ErrorIs(t, err, apperror.ErrMissingRequiredField)
	assert.Equal(t, "start_date", apperror.GetAppError(err).Errors[0].Field)
}

func TestResolveRejectsUnknownAndMismatchedKinds(t *testing.T) {
	_, err := Resolve("cruise", tourItem(), Request{})
	assert.ErrorIs(t, err, apperror.ErrUnknownServiceType)

	_, err = Resolve(enum.ServiceTypeHotel, tourItem(), Request{Occupancy: entity.Occupancy{Adults: 1}})
	require.ErrorIs(t, err, apperror.ErrMissingRequiredField)
	assert.Equal(t, "service_id", apperror.GetAppError(err).Errors[0].Field)

	_, err = Resolve(enum.ServiceTypeTour, nil, Request{})
	assert.ErrorIs(t, err, apperror.ErrMissingRequiredField)
}

func TestParseFacilitiesEmpty(t *testing.T) {
	assert.Empty(t, ParseFacilities(""))
	assert.Empty(t, ParseFacilities(" , ,"))
}
