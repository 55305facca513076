package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/application/service"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/request"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Get returns an invoice by number
// @Router /invoices/{number} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetForQuotation returns the invoice of an accepted quotation
// @Router /quotations/{reference}/invoice [get]
func (h *InvoiceHandler) GetForQuotation(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceForQuotation(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices
// @Summary List Invoices
// @Tags admin-invoices
// @Security BearerAuth
// @Param status query string false "unpaid, partial or paid"
// @Router /admin/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var query request.InvoiceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: paginationParams(query.Page, query.PerPage),
		Search:     query.Search,
	}
	if query.Status != "" {
		status := enum.InvoiceStatus(query.Status)
		params.Status = &status
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Invoices retrieved successfully", invoices, params.Pagination, total)
}

// RecordPayment records an externally confirmed payment
// @Summary Record Payment
// @Tags admin-invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RecordPaymentRequest true "Payment"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /admin/invoices/{number}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	paymentDate, err := parseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		InvoiceNumber:    c.Param("number"),
		Amount:           req.Amount,
		PaymentType:      enum.PaymentType(req.PaymentType),
		PaymentReference: req.PaymentReference,
		PaymentDate:      paymentDate,
		Notes:            req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", invoice)
}
