package litecoin

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// Decimals is the number of fractional digits of one litecoin
	Decimals = 8

	// LitoshiPerLitecoin is the number of minimal units in one litecoin
	LitoshiPerLitecoin = 100000000
)

// ErrMalformedAmount is returned when a currency string cannot be converted to minimal units
var ErrMalformedAmount = errors.New("malformed amount")

var maxUnits = decimal.NewFromInt(math.MaxInt64)

// maxUnitDigits is the number of decimal digits in math.MaxInt64
const maxUnitDigits = 19

// ToMinimalUnits converts a decimal currency string such as "0.00012345" into
// integer minimal units, scaling by 10^decimals with exact decimal arithmetic.
// Negative values, values with more fractional digits than the scale allows
// and values that overflow int64 are rejected.
func ToMinimalUnits(amount string, decimals int32) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrMalformedAmount, amount)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrMalformedAmount, amount)
	}
	if d.IsZero() {
		return 0, nil
	}

	// bound the exponent before anything rescales the coefficient, which
	// costs time and memory proportional to it
	exp := int64(d.Exponent()) + int64(decimals)
	digits := int64(d.NumDigits())
	if digits+exp > maxUnitDigits {
		return 0, fmt.Errorf("%w: %q overflows", ErrMalformedAmount, amount)
	}
	if -exp > digits {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", ErrMalformedAmount, amount, decimals)
	}

	units := d.Shift(decimals)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", ErrMalformedAmount, amount, decimals)
	}

	if units.GreaterThan(maxUnits) {
		return 0, fmt.Errorf("%w: %q overflows", ErrMalformedAmount, amount)
	}

	return units.IntPart(), nil
}

// LitecoinToLitoshi converts an LTC amount string to litoshi
func LitecoinToLitoshi(amount string) (int64, error) {
	return ToMinimalUnits(amount, Decimals)
}

// LitoshiToLitecoin converts litoshi to an exact LTC decimal
func LitoshiToLitecoin(litoshi int64) decimal.Decimal {
	return decimal.New(litoshi, -Decimals)
}

// FormatAmount formats a litoshi amount for display
func FormatAmount(litoshi int64) string {
	return fmt.Sprintf("%s LTC", LitoshiToLitecoin(litoshi).StringFixed(Decimals))
}
