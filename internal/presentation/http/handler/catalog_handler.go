package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/application/service"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/request"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/response"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"gorm.io/datatypes"
)

// CatalogHandler handles catalog HTTP requests. The :type path segment is
// one of the four service types.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create stores a new catalog item
// @Router /admin/catalog/{type} [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	serviceType := enum.ServiceType(c.Param("type"))
	item := &entity.CatalogItem{Type: serviceType}

	var bindErr error
	switch serviceType {
	case enum.ServiceTypeTour:
		var req request.TourPackageRequest
		if bindErr = c.ShouldBindJSON(&req); bindErr == nil {
			item.Tour = &entity.TourPackage{
				Name:           req.Name,
				DurationDays:   req.DurationDays,
				PricePerPerson: req.PricePerPerson,
				Description:    req.Description,
				Itinerary:      datatypes.JSONSlice[entity.ItineraryDay](req.Itinerary),
			}
		}
	case enum.ServiceTypeVehicle:
		var req request.VehicleRequest
		if bindErr = c.ShouldBindJSON(&req); bindErr == nil {
			item.Vehicle = &entity.Vehicle{
				Name:              req.Name,
				Category:          req.Category,
				PassengerCapacity: req.PassengerCapacity,
				IncludedKmPerDay:  req.IncludedKmPerDay,
				ExtraKmRate:       req.ExtraKmRate,
				DailyRate:         req.DailyRate,
				AvailabilityMode:  enum.AvailabilityMode(req.AvailabilityMode),
				Description:       req.Description,
			}
		}
	case enum.ServiceTypeHotel:
		var req request.HotelRequest
		if bindErr = c.ShouldBindJSON(&req); bindErr == nil {
			item.Hotel = &entity.Hotel{
				Name:        req.Name,
				Location:    req.Location,
				PriceTier:   req.PriceTier,
				Facilities:  req.Facilities,
				NightlyRate: req.NightlyRate,
				Description: req.Description,
			}
		}
	case enum.ServiceTypeTransfer:
		var req request.TransferRouteRequest
		if bindErr = c.ShouldBindJSON(&req); bindErr == nil {
			item.Transfer = &entity.TransferRoute{
				Pickup:    req.Pickup,
				DropOff:   req.DropOff,
				Price:     req.Price,
				VehicleID: req.VehicleID,
			}
		}
	default:
		response.Error(c, apperror.NewUnknownServiceTypeError(string(serviceType)))
		return
	}
	if bindErr != nil {
		response.BadRequest(c, "Invalid request body: "+bindErr.Error())
		return
	}

	created, err := h.catalogService.CreateItem(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Catalog item created successfully", created)
}

// Get returns one catalog item
// @Router /admin/catalog/{type}/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid catalog item ID")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), enum.ServiceType(c.Param("type")), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog item retrieved successfully", item)
}

// List returns catalog items of one type
// @Router /admin/catalog/{type} [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var query struct {
		Page    int `form:"page"`
		PerPage int `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params := paginationParams(query.Page, query.PerPage)

	items, total, err := h.catalogService.ListItems(c.Request.Context(), enum.ServiceType(c.Param("type")), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Catalog retrieved successfully", items, params, total)
}
