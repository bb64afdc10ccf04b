package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

var bigOne = big.NewInt(1)

// mul512 splits the double-width product x*y into its high and low
// 256-bit halves.
func mul512(x, y *big.Int) (hi, lo *big.Int) {
	prod := new(big.Int).Mul(x, y)
	lo = new(big.Int).And(prod, oc.MaxUint256)
	hi = new(big.Int).Rsh(prod, 256)
	return hi, lo
}

// MulDivFloor returns floor(x*y/z). The product is carried at double
// width, so x*y up to 512 bits never corrupts the quotient.
func MulDivFloor(x, y, z *big.Int) (*big.Int, error) {
	if z.Sign() == 0 {
		return nil, oc.ErrDivisionByZero
	}
	q := new(big.Int).Mul(x, y)
	q.Div(q, z)
	if q.Cmp(oc.MaxUint256) > 0 {
		return nil, oc.ErrOverflow
	}
	return q, nil
}

// MulDivCeil returns ceil(x*y/z): the floor quotient plus one whenever a
// remainder exists. Incrementing past the maximum representable value is
// itself an overflow.
func MulDivCeil(x, y, z *big.Int) (*big.Int, error) {
	if z.Sign() == 0 {
		return nil, oc.ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	q, r := new(big.Int).QuoRem(prod, z, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, bigOne)
	}
	if q.Cmp(oc.MaxUint256) > 0 {
		return nil, oc.ErrOverflow
	}
	return q, nil
}

// MulDiv dispatches on the requested rounding direction.
func MulDiv(x, y, z *big.Int, rounding oc.Rounding) (*big.Int, error) {
	if rounding == oc.RoundingUp {
		return MulDivCeil(x, y, z)
	}
	return MulDivFloor(x, y, z)
}

// MinFactor returns the smallest denominator z for which MulDivCeil(x, y, z)
// does not overflow, derived from the two halves of the 512-bit product:
// with p = hi*2^256 + lo and m = 2^256-1, ceil(p/m) = hi plus one when
// 0 < hi+lo <= m, plus two when hi+lo > m.
func MinFactor(x, y *big.Int) *big.Int {
	hi, lo := mul512(x, y)
	sum := lo.Add(lo, hi)
	if sum.Sign() == 0 {
		return big.NewInt(1)
	}
	factor := hi.Add(hi, bigOne)
	if sum.Cmp(oc.MaxUint256) > 0 {
		factor.Add(factor, bigOne)
	}
	return factor
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
