package utils

import (
	customError "github.com/segyhp/rental-engine/pkg/errors"

	"github.com/shopspring/decimal"
)

// LateFeeRate is charged per day late, as a fraction of the daily rate.
var LateFeeRate = decimal.RequireFromString("0.15")

const feePlaces = 2

// CalculateBaseFee calculates the charge for an on-time rental
// Formula: dailyRate * rentalDays, rounded half away from zero to 2 places
func CalculateBaseFee(dailyRate decimal.NullDecimal, rentalDays int) (decimal.Decimal, error) {
	if !dailyRate.Valid || dailyRate.Decimal.IsNegative() || rentalDays < 0 {
		return decimal.Zero, customError.WrapInvalidArgument("daily rate and rental days must be valid")
	}

	return dailyRate.Decimal.Mul(decimal.NewFromInt(int64(rentalDays))).Round(feePlaces), nil
}

// CalculateLateFee calculates the penalty for a late return
// Formula: dailyRate * 0.15 * daysLate, rounded half away from zero to 2 places.
// Non-positive daysLate never charges and never needs a rate.
func CalculateLateFee(dailyRate decimal.NullDecimal, daysLate int) (decimal.Decimal, error) {
	if daysLate <= 0 {
		return decimal.Zero, nil
	}

	if !dailyRate.Valid {
		return decimal.Zero, customError.WrapInvalidArgument("daily rate is required to compute a late fee")
	}

	return dailyRate.Decimal.
		Mul(LateFeeRate).
		Mul(decimal.NewFromInt(int64(daysLate))).
		Round(feePlaces), nil
}
