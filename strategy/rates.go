package strategy

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/gradientswap/gradient-go/decimal_math"
	curve "github.com/gradientswap/gradient-go/order_curve/math"
	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// ScaledRateFromDecimal converts a decimal rate to its fixed-point
// representation, floor(rate * 2^48).
func ScaledRateFromDecimal(d decimal.Decimal) (*big.Int, error) {
	if d.IsNegative() {
		return nil, oc.ErrInvalidRate
	}
	return d.Mul(decimal_math.Pow2(oc.RateMantissaBits)).BigInt(), nil
}

// SqrtScaledRateFromDecimal converts a decimal rate to the sqrt-scaled
// representation used by gradient initial rates, floor(sqrt(rate) * 2^48).
func SqrtScaledRateFromDecimal(d decimal.Decimal) (*big.Int, error) {
	if d.IsNegative() {
		return nil, oc.ErrInvalidRate
	}
	scaled := d.Mul(decimal_math.Pow2(2 * oc.RateMantissaBits)).BigInt()
	return new(big.Int).Sqrt(scaled), nil
}

// EncodeRateFromDecimal packs a decimal order rate.
func EncodeRateFromDecimal(d decimal.Decimal) (uint64, error) {
	scaled, err := ScaledRateFromDecimal(d)
	if err != nil {
		return 0, err
	}
	return curve.EncodeRate(scaled)
}

// EncodeInitialRateFromDecimal packs a decimal gradient initial rate in
// its sqrt encoding.
func EncodeInitialRateFromDecimal(d decimal.Decimal) (uint64, error) {
	scaled, err := SqrtScaledRateFromDecimal(d)
	if err != nil {
		return 0, err
	}
	return curve.EncodeRate(scaled)
}

// EncodeMultiFactorFromDecimal packs a decimal per-second multi-factor.
func EncodeMultiFactorFromDecimal(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() {
		return 0, oc.ErrInvalidRate
	}
	scaled := d.Mul(decimal_math.Pow2(oc.RateMantissaBits)).BigInt()
	return curve.EncodeGradientFactor(scaled)
}

// RateToDecimal renders a scaled rate at the given decimal precision.
func RateToDecimal(scaled *big.Int, precision int32) decimal.Decimal {
	return decimal_math.RatioDecimal(scaled, oc.One, precision)
}

// FractionToDecimal renders a rate fraction at the given decimal
// precision.
func FractionToDecimal(f oc.Fraction, precision int32) decimal.Decimal {
	return decimal_math.RatioDecimal(f.N, f.D, precision)
}
