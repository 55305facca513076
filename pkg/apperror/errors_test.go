package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorIsMatchesKind(t *testing.T) {
	err := NewQuotationExpiredError("QT-1234ABCD")
	wrapped := fmt.Errorf("accept: %w", err)

	assert.True(t, errors.Is(wrapped, ErrQuotationExpired))
	assert.False(t, errors.Is(wrapped, ErrInvalidTransition))
	assert.Equal(t, http.StatusGone, GetAppError(wrapped).Code)
}

func TestNotFoundMatchesSentinel(t *testing.T) {
	assert.ErrorIs(t, NewNotFoundError("Invoice"), ErrNotFound)
}

func TestKindlessErrorsOnlyMatchThemselves(t *testing.T) {
	custom := NewAppError(http.StatusTeapot, "short and stout")
	assert.False(t, errors.Is(custom, ErrInternalServer))
	assert.True(t, errors.Is(ErrInternalServer, ErrInternalServer))
}

func TestFieldErrorsCarryTheFieldName(t *testing.T) {
	err := NewInvalidPricingInputError("deposit_percentage", "must be between 0 and 100")
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "deposit_percentage", err.Errors[0].Field)
	assert.Contains(t, err.Error(), "deposit_percentage")

	missing := NewMissingRequiredFieldError("itinerary")
	assert.ErrorIs(t, missing, ErrMissingRequiredField)
	assert.Equal(t, "itinerary", missing.Errors[0].Field)
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "boom", appErr.Message)
}
