package request

import "github.com/shopspring/decimal"

// CreateQuotationRequest represents the create quotation request body.
// Dates use the YYYY-MM-DD layout. Money accepts JSON numbers or strings.
type CreateQuotationRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone *string `json:"customer_phone"`

	ServiceType string `json:"service_type" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`

	StartDate string  `json:"start_date" binding:"required"`
	EndDate   *string `json:"end_date"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	BasePrice            *decimal.Decimal `json:"base_price"`
	AccommodationUpgrade *decimal.Decimal `json:"accommodation_upgrade"`
	DiscountPercentage   *decimal.Decimal `json:"discount_percentage"`
	DiscountAmount       *decimal.Decimal `json:"discount_amount"`
	DepositPercentage    *decimal.Decimal `json:"deposit_percentage"`
	Currency             string           `json:"currency" binding:"omitempty,len=3"`
	ValidUntil           *string          `json:"valid_until"`

	SpecialRequests  *string  `json:"special_requests"`
	IncludedServices []string `json:"included_services"`
	ExcludedServices []string `json:"excluded_services"`
}

// QuotationListQuery holds the admin list filters
type QuotationListQuery struct {
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	Search      string `form:"search"`
	Status      string `form:"status"`
	ServiceType string `form:"service_type"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
}
