package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/application/service"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/request"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/response"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Price a service and store it as a draft quotation
// @Tags admin-quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} response.APIResponse
// @Router /admin/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req request.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := createQuotationInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

func createQuotationInput(req *request.CreateQuotationRequest) (*service.CreateQuotationInput, error) {
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseOptionalDate("valid_until", req.ValidUntil)
	if err != nil {
		return nil, err
	}

	upgrade := decimal.Zero
	if req.AccommodationUpgrade != nil {
		upgrade = *req.AccommodationUpgrade
	}

	return &service.CreateQuotationInput{
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		CustomerPhone:        req.CustomerPhone,
		ServiceType:          enum.ServiceType(req.ServiceType),
		ServiceID:            req.ServiceID,
		StartDate:            startDate,
		EndDate:              endDate,
		Adults:               req.Adults,
		Children:             req.Children,
		Infants:              req.Infants,
		BasePrice:            req.BasePrice,
		AccommodationUpgrade: upgrade,
		DiscountPercentage:   req.DiscountPercentage,
		DiscountAmount:       req.DiscountAmount,
		DepositPercentage:    req.DepositPercentage,
		Currency:             req.Currency,
		ValidUntil:           validUntil,
		SpecialRequests:      req.SpecialRequests,
		IncludedServices:     req.IncludedServices,
		ExcludedServices:     req.ExcludedServices,
	}, nil
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get all quotations with pagination and filtering
// @Tags admin-quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Reference, customer name or email"
// @Param status query string false "Stored status filter"
// @Param service_type query string false "Service type filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	var query request.QuotationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.QuotationFilterParams{
		Pagination: paginationParams(query.Page, query.PerPage),
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}
	if query.Status != "" {
		status := enum.QuotationStatus(query.Status)
		if !status.IsValid() {
			response.Error(c, apperror.NewBadRequestError("Unknown quotation status "+query.Status))
			return
		}
		params.Status = &status
	}
	if query.ServiceType != "" {
		serviceType := enum.ServiceType(query.ServiceType)
		if !serviceType.IsValid() {
			response.Error(c, apperror.NewUnknownServiceTypeError(query.ServiceType))
			return
		}
		params.ServiceType = &serviceType
	}

	quotations, total, err := h.quotationService.ListQuotations(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Quotations retrieved successfully", quotations, params.Pagination, total)
}

// AdminGet returns a quotation without counting a customer view
// @Router /admin/quotations/{reference} [get]
func (h *QuotationHandler) AdminGet(c *gin.Context) {
	quotation, err := h.quotationService.GetQuotationForAdmin(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Send marks a draft quotation as sent
// @Router /admin/quotations/{reference}/send [post]
func (h *QuotationHandler) Send(c *gin.Context) {
	quotation, err := h.quotationService.SendQuotation(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation sent", quotation)
}

// Get handles the customer opening a quotation link. Every call counts as a view.
// @Summary Get Quotation
// @Tags quotations
// @Produce json
// @Param reference path string true "Quotation reference"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{reference} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), c.Param("reference"), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation retrieved successfully", response.CustomerQuotation(quotation))
}

// Accept handles the customer accepting a quotation
// @Router /quotations/{reference}/accept [post]
func (h *QuotationHandler) Accept(c *gin.Context) {
	quotation, err := h.quotationService.AcceptQuotation(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation accepted", response.CustomerQuotation(quotation))
}

// Reject handles the customer rejecting a quotation
// @Router /quotations/{reference}/reject [post]
func (h *QuotationHandler) Reject(c *gin.Context) {
	quotation, err := h.quotationService.RejectQuotation(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation rejected", response.CustomerQuotation(quotation))
}
