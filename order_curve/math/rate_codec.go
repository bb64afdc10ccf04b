package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// The compact rate encoding packs a 48-bit mantissa and a shift amount
// into a single uint64 as exponent<<48 | mantissa, with
// decoded = mantissa << exponent. Decoded values are fixed-point with
// scale 2^48. Encoding keeps the largest mantissa and smallest exponent
// that reproduce the value's top 48 bits, so re-encoding a decoded value
// never exceeds the original (floor approximation).

// EncodeRate encodes a scaled rate under the order codec ceiling (2^96).
func EncodeRate(value *big.Int) (uint64, error) {
	return encodeCompact(value, oc.MaxScaledRate)
}

// DecodeRate decodes a packed order rate, rejecting encodings whose
// shifted magnitude reaches the 2^96 ceiling.
func DecodeRate(rate uint64) (*big.Int, error) {
	return decodeCompact(rate, oc.MaxScaledRate)
}

// EncodeGradientFactor encodes a scaled per-second multi-factor under the
// gradient codec's tighter ceiling (2^64).
func EncodeGradientFactor(value *big.Int) (uint64, error) {
	return encodeCompact(value, oc.MaxScaledFactor)
}

// DecodeGradientFactor decodes a packed multi-factor.
func DecodeGradientFactor(factor uint64) (*big.Int, error) {
	return decodeCompact(factor, oc.MaxScaledFactor)
}

// DecodeGradientInitialRate decodes a packed sqrt-encoded initial rate.
// The decoded value represents sqrt(rate) * 2^48 and shares the 2^96
// ceiling of the order codec; the two schemes stay separate entry points
// because their downstream arithmetic differs.
func DecodeGradientInitialRate(rate uint64) (*big.Int, error) {
	return decodeCompact(rate, oc.MaxScaledRate)
}

func encodeCompact(value, ceiling *big.Int) (uint64, error) {
	if value == nil || value.Sign() < 0 || value.Cmp(ceiling) >= 0 {
		return 0, oc.ErrInvalidRate
	}
	if value.BitLen() <= oc.RateMantissaBits {
		return value.Uint64(), nil
	}
	shift := uint(value.BitLen() - oc.RateMantissaBits)
	mantissa := new(big.Int).Rsh(value, shift)
	return uint64(shift)<<oc.RateMantissaBits | mantissa.Uint64(), nil
}

func decodeCompact(rate uint64, ceiling *big.Int) (*big.Int, error) {
	mantissa := rate & oc.RateMantissaMask
	shift := uint(rate >> oc.RateMantissaBits)
	value := new(big.Int).Lsh(new(big.Int).SetUint64(mantissa), shift)
	if value.Cmp(ceiling) >= 0 {
		return nil, oc.ErrInvalidRate
	}
	return value, nil
}
