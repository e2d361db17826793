package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	m, err := FromDecimal(decimal.RequireFromString("123.456"))
	require.NoError(t, err)
	assert.Equal(t, Milliunit(123456), m)
}

func TestFromDecimal_RoundsSubMilliunit(t *testing.T) {
	m, err := FromDecimal(decimal.RequireFromString("0.0015"))
	require.NoError(t, err)
	assert.Equal(t, Milliunit(2), m)

	m, err = FromDecimal(decimal.RequireFromString("-0.0015"))
	require.NoError(t, err)
	assert.Equal(t, Milliunit(-2), m)
}

func TestFromDecimal_OutOfRange(t *testing.T) {
	huge := decimal.New(1, 30)
	_, err := FromDecimal(huge)
	assert.ErrorIs(t, err, ErrUnsafeNumber)
}

func TestToDecimal_RoundTrip(t *testing.T) {
	for _, m := range []Milliunit{0, 1, -1, 999, 1000, -123456, 50000} {
		back, err := FromDecimal(ToDecimal(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestFromFloat(t *testing.T) {
	m, err := FromFloat(12.345)
	require.NoError(t, err)
	assert.Equal(t, Milliunit(12345), m)
}

func TestFromFloat_RejectsNonFinite(t *testing.T) {
	_, err := FromFloat(math.NaN())
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = FromFloat(math.Inf(1))
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = FromFloat(math.Inf(-1))
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestFromFloat_RejectsOutOfRange(t *testing.T) {
	// 9.223372036854776e15 * 1000 lands on exactly 2^63, the first value an
	// int64 cannot hold.
	_, err := FromFloat(9.223372036854776e15)
	assert.ErrorIs(t, err, ErrUnsafeNumber)

	_, err = FromFloat(-1e16)
	assert.ErrorIs(t, err, ErrUnsafeNumber)

	// Just inside the range still converts.
	_, err = FromFloat(9.223372036854774e15)
	assert.NoError(t, err)
}

func TestParseString(t *testing.T) {
	m, err := ParseString("-99.99")
	require.NoError(t, err)
	assert.Equal(t, Milliunit(-99990), m)

	_, err = ParseString("not a number")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.345", Milliunit(12345).String())
	assert.Equal(t, "-0.01", Milliunit(-10).String())
	assert.Equal(t, "0", Milliunit(0).String())
}

func TestMultiply(t *testing.T) {
	m, err := Multiply(Milliunit(1000), 1.5)
	require.NoError(t, err)
	assert.Equal(t, Milliunit(1500), m)
}

func TestMultiply_RejectsNonFinite(t *testing.T) {
	_, err := Multiply(Milliunit(1000), math.NaN())
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestMultiply_RejectsOverflow(t *testing.T) {
	// 2^62 * 2.0 is exactly 2^63 and must not wrap to min int64.
	_, err := Multiply(Milliunit(1<<62), 2.0)
	assert.ErrorIs(t, err, ErrUnsafeNumber)

	_, err = Multiply(Milliunit(math.MaxInt64/2), 3.0)
	assert.ErrorIs(t, err, ErrUnsafeNumber)
}

func TestDivide_Exact(t *testing.T) {
	m, err := Divide(Milliunit(3000), 3)
	require.NoError(t, err)
	assert.Equal(t, Milliunit(1000), m)
}

func TestDivide_RoundsHalfToEven(t *testing.T) {
	cases := []struct {
		amount   Milliunit
		by       int64
		expected Milliunit
	}{
		{2500, 1000, 2},  // 2.5 -> 2
		{3500, 1000, 4},  // 3.5 -> 4
		{-2500, 1000, -2},
		{-3500, 1000, -4},
		{2500, 2, 1250},
		{1001, 2, 500},   // 500.5 -> 500
		{1003, 2, 502},   // 501.5 -> 502
		{1000, 3, 333},
		{2000, 3, 667},
	}
	for _, tc := range cases {
		m, err := Divide(tc.amount, tc.by)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m, "Divide(%d, %d)", tc.amount, tc.by)
	}
}

func TestDivide_ByZero(t *testing.T) {
	_, err := Divide(Milliunit(100), 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestArithmeticHelpers(t *testing.T) {
	assert.Equal(t, Milliunit(30), Add(10, 20))
	assert.Equal(t, Milliunit(-10), Sub(10, 20))
	assert.Equal(t, Milliunit(-10), Neg(10))
	assert.Equal(t, Milliunit(10), Abs(-10))
	assert.Equal(t, Milliunit(10), Min(10, 20))
	assert.Equal(t, Milliunit(20), Max(10, 20))
	assert.Equal(t, -1, Sign(-5))
	assert.Equal(t, 0, Sign(0))
	assert.Equal(t, 1, Sign(5))
	assert.Equal(t, Milliunit(60), Sum(10, 20, 30))
}
