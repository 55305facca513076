// Package pricing derives the monetary fields of a quotation. Everything here
// is pure arithmetic on decimals, rounded half-up to the currency's minor unit.
package pricing

import (
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places every amount is rounded to
const MinorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// Input holds the raw pricing inputs of a quotation
type Input struct {
	UnitPrice            decimal.Decimal
	Units                int
	AccommodationUpgrade decimal.Decimal
	// DiscountPercentage and DiscountAmount are mutually exclusive. When both
	// are supplied the percentage wins and the amount is ignored.
	DiscountPercentage *decimal.Decimal
	DiscountAmount     *decimal.Decimal
	DepositPercentage  decimal.Decimal
	Currency           string
}

// Breakdown is the derived pricing of a quotation
type Breakdown struct {
	BasePrice            decimal.Decimal
	AccommodationUpgrade decimal.Decimal
	Subtotal             decimal.Decimal
	DiscountPercentage   decimal.Decimal
	DiscountAmount       decimal.Decimal
	TotalAmount          decimal.Decimal
	DepositPercentage    decimal.Decimal
	DepositAmount        decimal.Decimal
	BalanceAmount        decimal.Decimal
	Currency             string
}

// Calculate derives subtotal, discount, total, deposit and balance.
//
//	subtotal = base_price + accommodation_upgrade
//	total    = subtotal - discount
//	deposit  = round(total * deposit_percentage / 100)
//	balance  = total - deposit
func Calculate(in Input) (Breakdown, error) {
	if in.Units < 1 {
		return Breakdown{}, apperror.NewInvalidPricingInputError("units", "must be at least 1")
	}
	if in.UnitPrice.IsNegative() {
		return Breakdown{}, apperror.NewInvalidPricingInputError("base_price", "must not be negative")
	}
	if in.AccommodationUpgrade.IsNegative() {
		return Breakdown{}, apperror.NewInvalidPricingInputError("accommodation_upgrade", "must not be negative")
	}
	if !isPercentage(in.DepositPercentage) {
		return Breakdown{}, apperror.NewInvalidPricingInputError("deposit_percentage", "must be between 0 and 100")
	}

	base := Round(in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Units))))
	upgrade := Round(in.AccommodationUpgrade)
	subtotal := base.Add(upgrade)

	discount := decimal.Zero
	discountPct := decimal.Zero
	switch {
	case in.DiscountPercentage != nil:
		if !isPercentage(*in.DiscountPercentage) {
			return Breakdown{}, apperror.NewInvalidPricingInputError("discount_percentage", "must be between 0 and 100")
		}
		discountPct = *in.DiscountPercentage
		discount = Round(subtotal.Mul(discountPct).Div(hundred))
	case in.DiscountAmount != nil:
		if in.DiscountAmount.IsNegative() {
			return Breakdown{}, apperror.NewInvalidPricingInputError("discount_amount", "must not be negative")
		}
		discount = Round(*in.DiscountAmount)
		if subtotal.IsPositive() {
			discountPct = Round(discount.Mul(hundred).Div(subtotal))
		}
	}
	if discount.GreaterThan(subtotal) {
		return Breakdown{}, apperror.NewInvalidPricingInputError("discount_amount", "must not exceed the subtotal")
	}

	total := subtotal.Sub(discount)
	deposit := Round(total.Mul(in.DepositPercentage).Div(hundred))
	balance := total.Sub(deposit)

	return Breakdown{
		BasePrice:            base,
		AccommodationUpgrade: upgrade,
		Subtotal:             subtotal,
		DiscountPercentage:   discountPct,
		DiscountAmount:       discount,
		TotalAmount:          total,
		DepositPercentage:    in.DepositPercentage,
		DepositAmount:        deposit,
		BalanceAmount:        balance,
		Currency:             in.Currency,
	}, nil
}

// Round rounds d half-up to the minor unit. Inputs are validated as
// non-negative, so decimal's half-away-from-zero rounding is half-up here.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}

// ToMinor converts an amount to integer minor units (cents)
func ToMinor(d decimal.Decimal) int64 {
	return Round(d).Shift(MinorUnitPlaces).IntPart()
}

// FromMinor converts integer minor units back to a decimal amount
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorUnitPlaces)
}

func isPercentage(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
