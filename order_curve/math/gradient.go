package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// CalcCurrentRate computes the exchange rate of a gradient curve after
// timeElapsed seconds. The initial rate is sqrt-encoded (the decoded
// value is sqrt(rate) * 2^48), the multi-factor is linear-encoded as a
// per-second rate of change scaled by 2^48.
//
// The result is returned as an unreduced Fraction so the caller can feed
// it into a mulDiv without an intermediate rounding step; the linear
// variants are exact in the decoded inputs.
func CalcCurrentRate(gradientType oc.GradientType, initialRate, multiFactor, timeElapsed uint64) (oc.Fraction, error) {
	v, err := DecodeGradientInitialRate(initialRate)
	if err != nil {
		return oc.Fraction{}, err
	}
	m, err := DecodeGradientFactor(multiFactor)
	if err != nil {
		return oc.Fraction{}, err
	}

	// rate(0) = v^2 / 2^96
	rateN := new(big.Int).Mul(v, v)
	rateD := new(big.Int).Set(oc.OneSquared)
	mt := new(big.Int).Mul(m, new(big.Int).SetUint64(timeElapsed))

	var n, d *big.Int
	switch gradientType {
	case oc.GradientLinearIncrease:
		// rate(0) * (1 + m*t)
		n = new(big.Int).Mul(rateN, new(big.Int).Add(oc.One, mt))
		d = rateD.Mul(rateD, oc.One)
	case oc.GradientLinearDecrease:
		// rate(0) * (1 - m*t)
		if mt.Cmp(oc.One) >= 0 {
			return oc.Fraction{}, oc.ErrInvalidRate
		}
		n = new(big.Int).Mul(rateN, new(big.Int).Sub(oc.One, mt))
		d = rateD.Mul(rateD, oc.One)
	case oc.GradientLinearInvIncrease:
		// rate(0) / (1 - m*t)
		if mt.Cmp(oc.One) >= 0 {
			return oc.Fraction{}, oc.ErrInvalidRate
		}
		n = rateN.Mul(rateN, oc.One)
		d = new(big.Int).Mul(rateD, new(big.Int).Sub(oc.One, mt))
	case oc.GradientLinearInvDecrease:
		// rate(0) / (1 + m*t)
		n = rateN.Mul(rateN, oc.One)
		d = new(big.Int).Mul(rateD, new(big.Int).Add(oc.One, mt))
	case oc.GradientExponentialIncrease:
		// rate(0) * e^(m*t)
		e, err := Exp(oc.Fraction{N: mt, D: oc.One})
		if err != nil {
			return oc.Fraction{}, err
		}
		n = rateN.Mul(rateN, e.N)
		d = rateD.Mul(rateD, e.D)
	case oc.GradientExponentialDecrease:
		// rate(0) * e^(-m*t)
		e, err := Exp(oc.Fraction{N: mt, D: oc.One})
		if err != nil {
			return oc.Fraction{}, err
		}
		n = rateN.Mul(rateN, e.D)
		d = rateD.Mul(rateD, e.N)
	default:
		return oc.Fraction{}, oc.ErrInvalidRate
	}
	return fitFraction(n, d), nil
}

// fitFraction right-shifts both components equally until they fit 256
// bits. This is not a gcd reduction; callers still receive the fraction
// unreduced whenever it already fits.
func fitFraction(n, d *big.Int) oc.Fraction {
	bits := n.BitLen()
	if d.BitLen() > bits {
		bits = d.BitLen()
	}
	if bits > 256 {
		shift := uint(bits - 256)
		n.Rsh(n, shift)
		d.Rsh(d, shift)
	}
	return oc.Fraction{N: n, D: d}
}
