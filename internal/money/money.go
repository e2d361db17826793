// Package money holds the Milliunit currency primitive. Every monetary value in
// the engine is an integer number of milliunits (1/1000 of a currency unit);
// decimal values exist only at the API boundary.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Milliunit is 1/1000 of a currency unit.
type Milliunit int64

var (
	// ErrNotFinite is returned when a NaN or infinite value reaches a constructor.
	ErrNotFinite = errors.New("money: value is not finite")
	// ErrUnsafeNumber is returned when a value does not fit the milliunit range.
	ErrUnsafeNumber = errors.New("money: value outside safe integer range")
	// ErrDivideByZero is returned by Divide for a zero divisor.
	ErrDivideByZero = errors.New("money: division by zero")
)

var (
	maxMilliunit = decimal.NewFromInt(math.MaxInt64)
	minMilliunit = decimal.NewFromInt(math.MinInt64)
)

// float64 cannot represent math.MaxInt64; the nearest value is 2^63, one past
// the largest Milliunit, so the upper bound must be rejected inclusively.
// -2^63 is exact and in range, so the lower bound is exclusive.
const (
	maxMilliunitFloat = float64(1 << 63)
	minMilliunitFloat = float64(-1 << 63)
)

func floatOutOfRange(scaled float64) bool {
	return scaled >= maxMilliunitFloat || scaled < minMilliunitFloat
}

// FromDecimal converts a decimal currency amount to milliunits, rounding half
// away from zero on sub-milliunit precision. Values outside the representable
// range fail with ErrUnsafeNumber.
func FromDecimal(d decimal.Decimal) (Milliunit, error) {
	scaled := d.Shift(3).Round(0)
	if scaled.GreaterThan(maxMilliunit) || scaled.LessThan(minMilliunit) {
		return 0, ErrUnsafeNumber
	}
	return Milliunit(scaled.IntPart()), nil
}

// ToDecimal converts milliunits back to a decimal currency amount with three
// fractional digits.
func ToDecimal(m Milliunit) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Shift(-3)
}

// FromFloat converts a raw float to milliunits. NaN and infinities are
// rejected rather than coerced.
func FromFloat(v float64) (Milliunit, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	scaled := math.Round(v * 1000)
	if floatOutOfRange(scaled) {
		return 0, ErrUnsafeNumber
	}
	return Milliunit(scaled), nil
}

// ParseString converts a decimal string ("123.45") to milliunits.
func ParseString(s string) (Milliunit, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d)
}

// String renders the milliunit value as a decimal currency string.
func (m Milliunit) String() string {
	return ToDecimal(m).String()
}

func Add(a, b Milliunit) Milliunit { return a + b }

func Sub(a, b Milliunit) Milliunit { return a - b }

func Neg(a Milliunit) Milliunit { return -a }

func Abs(a Milliunit) Milliunit {
	if a < 0 {
		return -a
	}
	return a
}

func Min(a, b Milliunit) Milliunit {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Milliunit) Milliunit {
	if a > b {
		return a
	}
	return b
}

// Sign returns -1, 0 or 1.
func Sign(a Milliunit) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}

func Sum(values ...Milliunit) Milliunit {
	var total Milliunit
	for _, v := range values {
		total += v
	}
	return total
}

// Multiply scales a milliunit amount by a raw scalar, rounding to the nearest
// milliunit. The scalar must be finite.
func Multiply(m Milliunit, scalar float64) (Milliunit, error) {
	if math.IsNaN(scalar) || math.IsInf(scalar, 0) {
		return 0, ErrNotFinite
	}
	scaled := math.Round(float64(m) * scalar)
	if floatOutOfRange(scaled) {
		return 0, ErrUnsafeNumber
	}
	return Milliunit(scaled), nil
}

// Divide splits a milliunit amount by an integer divisor using round half to
// even, so repeated splits carry no systematic bias.
func Divide(m Milliunit, by int64) (Milliunit, error) {
	if by == 0 {
		return 0, ErrDivideByZero
	}

	quot := int64(m) / by
	rem := int64(m) % by
	if rem == 0 {
		return Milliunit(quot), nil
	}

	absRem := rem
	if absRem < 0 {
		absRem = -absRem
	}
	absBy := by
	if absBy < 0 {
		absBy = -absBy
	}

	// Direction of rounding away from the truncated quotient.
	step := int64(1)
	if (int64(m) < 0) != (by < 0) {
		step = -1
	}

	switch {
	case 2*absRem > absBy:
		quot += step
	case 2*absRem == absBy && quot%2 != 0:
		quot += step
	}
	return Milliunit(quot), nil
}
