package decimal_math

import (
	"math"

	"github.com/shopspring/decimal"
)

// Exp evaluates e^x by Taylor series, accurate to the given decimal
// scale. Intended as an arbitrary-precision reference, not a fast path.
func Exp(x decimal.Decimal, scale int32) decimal.Decimal {
	term := decimal.NewFromInt(1)
	sum := decimal.NewFromInt(1)
	eps := decimal.New(1, -scale)
	for i := 1; i < 1000; i++ {
		term = term.Mul(x).DivRound(decimal.NewFromInt(int64(i)), scale+10)
		sum = sum.Add(term)
		if term.Abs().LessThan(eps) {
			break
		}
	}
	return sum.Round(scale)
}

// Ln evaluates the natural logarithm of x > 0 by Newton iteration on
// f(y) = e^y - x, accurate to the given decimal scale.
func Ln(x decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Zero, ErrLnDomain
	}
	y := decimal.Zero
	if f, _ := x.Float64(); f > 0 && !math.IsInf(f, 1) {
		y = decimal.NewFromFloat(math.Log(f))
	}
	eps := decimal.New(1, -scale)
	for i := 0; i < 200; i++ {
		expY := Exp(y, scale+10)
		next := y.Sub(expY.Sub(x).DivRound(expY, scale+10))
		if next.Sub(y).Abs().LessThan(eps) {
			return next.Round(scale), nil
		}
		y = next
	}
	return y.Round(scale), nil
}
