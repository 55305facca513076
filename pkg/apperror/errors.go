package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by the quotation and invoice engine.
const (
	KindNotFound             = "not_found"
	KindUnauthorized         = "unauthorized"
	KindForbidden            = "forbidden"
	KindBadRequest           = "bad_request"
	KindConflict             = "conflict"
	KindValidation           = "validation_failed"
	KindInvalidPricingInput  = "invalid_pricing_input"
	KindUnknownServiceType   = "unknown_service_type"
	KindMissingRequiredField = "missing_required_field"
	KindQuotationExpired     = "quotation_expired"
	KindInvalidTransition    = "invalid_transition"
	KindOverpaymentRejected  = "overpayment_rejected"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target is an AppError of the same kind, so customised
// errors still match the sentinels below with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Kind == "" {
		return false
	}
	return t.Kind == e.Kind
}

// Common errors
var (
	ErrNotFound             = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized         = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden            = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest           = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer       = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict             = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrUnprocessable        = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Unprocessable entity"}
	ErrInvalidCredentials   = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired         = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Token has expired"}
	ErrInvalidToken         = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
	ErrInvalidPricingInput  = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidPricingInput, Message: "Invalid pricing input"}
	ErrUnknownServiceType   = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindUnknownServiceType, Message: "Unknown service type"}
	ErrMissingRequiredField = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindMissingRequiredField, Message: "Missing required field"}
	ErrQuotationExpired     = &AppError{Code: http.StatusGone, Kind: KindQuotationExpired, Message: "This quotation has expired, please request a new quotation"}
	ErrInvalidTransition    = &AppError{Code: http.StatusConflict, Kind: KindInvalidTransition, Message: "Invalid status transition"}
	ErrOverpaymentRejected  = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindOverpaymentRejected, Message: "Payment exceeds the invoice total"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInvalidPricingInputError reports which pricing field broke which rule.
func NewInvalidPricingInputError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidPricingInput,
		Message: "Invalid pricing input: " + field + " " + message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewUnknownServiceTypeError reports a service type outside tour, vehicle, hotel and transfer.
func NewUnknownServiceTypeError(serviceType string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindUnknownServiceType,
		Message: fmt.Sprintf("Unknown service type %q", serviceType),
		Errors:  []FieldError{{Field: "service_type", Message: "must be one of tour, vehicle, hotel, transfer"}},
	}
}

// NewMissingRequiredFieldError reports a field that the service type requires.
func NewMissingRequiredFieldError(field string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindMissingRequiredField,
		Message: "Missing required field: " + field,
		Errors:  []FieldError{{Field: field, Message: "is required"}},
	}
}

// NewQuotationExpiredError reports an action attempted on an expired quotation.
func NewQuotationExpiredError(reference string) *AppError {
	return &AppError{
		Code:    http.StatusGone,
		Kind:    KindQuotationExpired,
		Message: "Quotation " + reference + " has expired, please request a new quotation",
	}
}

// NewInvalidTransitionError reports a state machine rule violation.
func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("Cannot move quotation from %s to %s", from, to),
	}
}

// NewOverpaymentRejectedError reports a payment that would push paid_amount past the total.
func NewOverpaymentRejectedError(amount, remaining string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindOverpaymentRejected,
		Message: fmt.Sprintf("Payment of %s exceeds the remaining balance of %s", amount, remaining),
		Errors:  []FieldError{{Field: "amount", Message: "must not exceed remaining balance " + remaining}},
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
