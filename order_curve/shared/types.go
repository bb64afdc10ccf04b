package shared

import (
	"math/big"
)

const (
	// RateMantissaBits is the mantissa width of the compact rate encoding.
	RateMantissaBits = 48

	// MaxRateBits bounds the shifted magnitude of a decoded order rate.
	MaxRateBits = 96

	// MaxFactorBits bounds the shifted magnitude of a decoded gradient
	// multi-factor. The gradient codec is stricter than the order codec.
	MaxFactorBits = 64

	// ExpOneBits is the fixed-point scale of the exponential routines.
	ExpOneBits = 127

	// Exp2MaxInput is the exclusive input ceiling of Exp2.
	Exp2MaxInput = 16

	// ExpMaxShift is the largest power-of-two shift Exp may apply during
	// range reduction; beyond it the result cannot fit 256 bits.
	ExpMaxShift = 127
)

var (
	// One is the fixed-point unit of the rate scale (2^48).
	One = new(big.Int).Lsh(big.NewInt(1), RateMantissaBits)

	// OneSquared is One*One (2^96), the scale of squared sqrt-rates.
	OneSquared = new(big.Int).Lsh(big.NewInt(1), RateMantissaBits*2)

	// ExpOne is the fixed-point unit of Exp2/Exp results (2^127).
	ExpOne = new(big.Int).Lsh(big.NewInt(1), ExpOneBits)

	// MaxScaledRate is the exclusive ceiling of a decoded order rate (2^96).
	MaxScaledRate = new(big.Int).Lsh(big.NewInt(1), MaxRateBits)

	// MaxScaledFactor is the exclusive ceiling of a decoded gradient
	// multi-factor (2^64).
	MaxScaledFactor = new(big.Int).Lsh(big.NewInt(1), MaxFactorBits)

	MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// RateMantissaMask extracts the mantissa from a packed rate.
const RateMantissaMask = (uint64(1) << RateMantissaBits) - 1

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

// GradientType selects the law by which a gradient rate changes over
// elapsed time.
type GradientType uint8

const (
	GradientLinearIncrease GradientType = iota
	GradientLinearDecrease
	GradientLinearInvIncrease
	GradientLinearInvDecrease
	GradientExponentialIncrease
	GradientExponentialDecrease
)

var gradientTypeNames = map[GradientType]string{
	GradientLinearIncrease:      "linear-increase",
	GradientLinearDecrease:      "linear-decrease",
	GradientLinearInvIncrease:   "linear-inv-increase",
	GradientLinearInvDecrease:   "linear-inv-decrease",
	GradientExponentialIncrease: "exponential-increase",
	GradientExponentialDecrease: "exponential-decrease",
}

func (g GradientType) String() string {
	if name, ok := gradientTypeNames[g]; ok {
		return name
	}
	return "unknown"
}

// ParseGradientType maps a textual gradient type to its enum value.
func ParseGradientType(s string) (GradientType, error) {
	for g, name := range gradientTypeNames {
		if name == s {
			return g, nil
		}
	}
	return 0, ErrInvalidRate
}

// Fraction is an unreduced non-negative rational. The denominator must be
// non-zero; neither component may exceed 256 bits.
type Fraction struct {
	N *big.Int
	D *big.Int
}

// Valid reports whether the fraction satisfies its invariants.
func (f Fraction) Valid() bool {
	if f.N == nil || f.D == nil {
		return false
	}
	if f.N.Sign() < 0 || f.D.Sign() <= 0 {
		return false
	}
	return f.N.BitLen() <= 256 && f.D.BitLen() <= 256
}
