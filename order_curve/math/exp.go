package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// The exponential routines evaluate their polynomial at a 2^200 guard
// scale and round once when converting to the published 2^127 scale, so
// the result carries at most one ulp of rounding error at that scale.
const guardBits = 200

var (
	guardOne = new(big.Int).Lsh(big.NewInt(1), guardBits)

	// ln(2) * 2^200, rounded to nearest
	ln2Guard = mustBig("1113844574712631719546256151097547306333272293549090750737802")

	// e^(1/8), e^(1/4), e^(1/2), each scaled by 2^200
	expEighthGuard  = mustBig("1820899359026306112942654604851777037381149431892829186391415")
	expQuarterGuard = mustBig("2063349291871034355665440457568025363671799018964874045360793")
	expHalfGuard    = mustBig("2649392934267061211036835721852745290924276936933219255146948")

	// 2^(1/8), 2^(1/4), 2^(1/2), each scaled by 2^200
	twoPowEighthGuard  = mustBig("1752378363178414947805747710868629616330643547297213512761123")
	twoPowQuarterGuard = mustBig("1910982155601348724019629434353839705020884751581668224201135")
	twoPowHalfGuard    = mustBig("2272553576084360916141657902949647315979581976043234410928602")

	// 20!
	fact20 = big.NewInt(2432902008176640000)

	// 20!/k! for k = 2..20
	taylorCoeff = []int64{
		1216451004088320000,
		405483668029440000,
		101370917007360000,
		20274183401472000,
		3379030566912000,
		482718652416000,
		60339831552000,
		6704425728000,
		670442572800,
		60949324800,
		5079110400,
		390700800,
		27907200,
		1860480,
		116280,
		6840,
		380,
		20,
		1,
	}

	exp2InputCeiling = new(big.Int).Mul(big.NewInt(oc.Exp2MaxInput), oc.ExpOne)
	exp2FracMask     = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), oc.ExpOneBits), big.NewInt(1))
	exp2ResidMask    = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), oc.ExpOneBits-3), big.NewInt(1))
	guardResidMask   = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), guardBits-3), big.NewInt(1))
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("math: bad constant " + s)
	}
	return v
}

// expSeries evaluates e^y for 0 <= y < 1/8 at the guard scale via the
// factorial polynomial sum_{k=0..20} y^k/k!, folded as
// (sum_{k=2..20} y^k * 20!/k!) / 20! + y + 1.
func expSeries(y *big.Int) *big.Int {
	n := new(big.Int)
	z := new(big.Int).Set(y)
	t := new(big.Int)
	for _, c := range taylorCoeff {
		z.Mul(z, y)
		z.Rsh(z, guardBits)
		n.Add(n, t.Mul(z, big.NewInt(c)))
	}
	n.Div(n, fact20)
	n.Add(n, y)
	n.Add(n, guardOne)
	return n
}

// Exp2 computes 2^f for 0 <= f < 16, returned as a Fraction with
// denominator 2^127. The integer part of f is applied as an exact shift;
// the three high fractional bits multiply in precomputed roots of two; the
// residual below 2^-3 goes through the polynomial in natural units.
// Integer inputs are exact: Exp2(k) == 2^k exactly for k in [0, 16).
func Exp2(f oc.Fraction) (oc.Fraction, error) {
	if !f.Valid() {
		return oc.Fraction{}, oc.ErrInvalidRate
	}
	x, err := MulDivFloor(oc.ExpOne, f.N, f.D)
	if err != nil {
		return oc.Fraction{}, oc.ErrOverflow
	}
	if x.Cmp(exp2InputCeiling) >= 0 {
		return oc.Fraction{}, oc.ErrOverflow
	}
	intPart := uint(new(big.Int).Rsh(x, oc.ExpOneBits).Uint64())
	frac := new(big.Int).And(x, exp2FracMask)

	y := new(big.Int).And(frac, exp2ResidMask)
	yn := y.Mul(y, ln2Guard)
	yn.Rsh(yn, oc.ExpOneBits)

	n := expSeries(yn)
	if frac.Bit(oc.ExpOneBits-1) == 1 {
		n.Mul(n, twoPowHalfGuard)
		n.Rsh(n, guardBits)
	}
	if frac.Bit(oc.ExpOneBits-2) == 1 {
		n.Mul(n, twoPowQuarterGuard)
		n.Rsh(n, guardBits)
	}
	if frac.Bit(oc.ExpOneBits-3) == 1 {
		n.Mul(n, twoPowEighthGuard)
		n.Rsh(n, guardBits)
	}
	n.Rsh(n, guardBits-oc.ExpOneBits)
	n.Lsh(n, intPart)
	return oc.Fraction{N: n, D: new(big.Int).Set(oc.ExpOne)}, nil
}

// Exp computes e^x for x >= 0, returned as a Fraction with denominator
// 2^127. The input is reduced as x = k*ln2 + r so that e^x = 2^k * e^r,
// extending the valid domain well past the polynomial's direct range; k
// above 127 cannot be represented and fails with ErrExpOverflow.
func Exp(x oc.Fraction) (oc.Fraction, error) {
	if !x.Valid() {
		return oc.Fraction{}, oc.ErrInvalidRate
	}
	xs, err := MulDivFloor(guardOne, x.N, x.D)
	if err != nil {
		return oc.Fraction{}, oc.ErrExpOverflow
	}
	k, r := new(big.Int).QuoRem(xs, ln2Guard, new(big.Int))
	if k.Cmp(big.NewInt(oc.ExpMaxShift)) > 0 {
		return oc.Fraction{}, oc.ErrExpOverflow
	}

	n := expSeries(new(big.Int).And(r, guardResidMask))
	if r.Bit(guardBits-1) == 1 {
		n.Mul(n, expHalfGuard)
		n.Rsh(n, guardBits)
	}
	if r.Bit(guardBits-2) == 1 {
		n.Mul(n, expQuarterGuard)
		n.Rsh(n, guardBits)
	}
	if r.Bit(guardBits-3) == 1 {
		n.Mul(n, expEighthGuard)
		n.Rsh(n, guardBits)
	}
	n.Rsh(n, guardBits-oc.ExpOneBits)
	n.Lsh(n, uint(k.Uint64()))
	return oc.Fraction{N: n, D: new(big.Int).Set(oc.ExpOne)}, nil
}
