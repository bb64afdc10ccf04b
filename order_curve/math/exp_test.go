package math

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gradientswap/gradient-go/decimal_math"
	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

func frac(n, d int64) oc.Fraction {
	return oc.Fraction{N: big.NewInt(n), D: big.NewInt(d)}
}

// requireRelClose asserts |got - ref| / ref < tol, all in decimals.
func requireRelClose(t *testing.T, ref, got, tol decimal.Decimal, msg string) {
	t.Helper()
	diff := got.Sub(ref).Abs()
	rel := diff.DivRound(ref.Abs(), 45)
	require.True(t, rel.LessThan(tol), "%s: rel error %s exceeds %s", msg, rel, tol)
}

func TestExp2IntegerInputsExact(t *testing.T) {
	for k := int64(0); k < 16; k++ {
		res, err := Exp2(frac(k, 1))
		require.NoError(t, err)
		want := new(big.Int).Lsh(oc.ExpOne, uint(k))
		require.Zero(t, res.N.Cmp(want), "2^%d", k)
		require.Zero(t, res.D.Cmp(oc.ExpOne))
	}
}

func TestExp2InputCeiling(t *testing.T) {
	_, err := Exp2(frac(16, 1))
	require.ErrorIs(t, err, oc.ErrOverflow)

	// exactly at the ceiling in scaled form
	x := oc.Fraction{
		N: new(big.Int).Lsh(oc.ExpOne, 4),
		D: new(big.Int).Set(oc.ExpOne),
	}
	_, err = Exp2(x)
	require.ErrorIs(t, err, oc.ErrOverflow)

	// one scaled unit below passes
	x.N.Sub(x.N, big.NewInt(1))
	_, err = Exp2(x)
	require.NoError(t, err)

	_, err = Exp2(oc.Fraction{})
	require.ErrorIs(t, err, oc.ErrInvalidRate)
}

func TestExp2SqrtTwo(t *testing.T) {
	res, err := Exp2(frac(1, 2))
	require.NoError(t, err)
	require.Zero(t, res.D.Cmp(oc.ExpOne))

	// floor(sqrt(2) * 2^127) == isqrt(2^255)
	want := new(big.Int).Sqrt(new(big.Int).Lsh(big.NewInt(1), 255))
	diff := new(big.Int).Abs(new(big.Int).Sub(res.N, want))
	require.True(t, diff.Cmp(big.NewInt(16)) <= 0, "off by %s ulps", diff)
}

func TestExp2AgainstDecimalReference(t *testing.T) {
	ln2, err := decimal_math.Ln(decimal.NewFromInt(2), 50)
	require.NoError(t, err)
	tol := decimal.New(1, -30)

	check := func(n, d int64) {
		res, err := Exp2(frac(n, d))
		require.NoError(t, err)
		got := decimal_math.RatioDecimal(res.N, res.D, 45)
		x := decimal.NewFromInt(n).DivRound(decimal.NewFromInt(d), 50)
		ref := decimal_math.Exp(x.Mul(ln2), 50)
		requireRelClose(t, ref, got, tol, fmt.Sprintf("2^(%d/%d)", n, d))
	}

	for i := int64(1); i < 128; i++ {
		check(i, 8)
	}
	for i := int64(1); i <= 20; i++ {
		check(i, 7)
	}
}

func TestExpZeroAndOne(t *testing.T) {
	res, err := Exp(frac(0, 1))
	require.NoError(t, err)
	require.Zero(t, res.N.Cmp(oc.ExpOne))
	require.Zero(t, res.D.Cmp(oc.ExpOne))

	res, err = Exp(frac(1, 1))
	require.NoError(t, err)
	got := decimal_math.RatioDecimal(res.N, res.D, 45)
	ref := decimal_math.Exp(decimal.NewFromInt(1), 50)
	requireRelClose(t, ref, got, decimal.New(1, -30), "e^1")
}

func TestExpAgainstDecimalReference(t *testing.T) {
	tol := decimal.New(1, -30)
	check := func(n, d int64) {
		res, err := Exp(frac(n, d))
		require.NoError(t, err, "e^(%d/%d)", n, d)
		got := decimal_math.RatioDecimal(res.N, res.D, 45)
		x := decimal.NewFromInt(n).DivRound(decimal.NewFromInt(d), 50)
		ref := decimal_math.Exp(x, 60)
		requireRelClose(t, ref, got, tol, fmt.Sprintf("e^(%d/%d)", n, d))
	}

	for i := int64(1); i <= 80; i++ {
		check(i, 4)
	}
	check(50, 1)
	check(87, 1)
	check(88, 1)
	check(1, 1000000)
}

func TestExpMonotone(t *testing.T) {
	prev := new(big.Int)
	for i := int64(0); i <= 64; i++ {
		res, err := Exp(frac(i, 16))
		require.NoError(t, err)
		require.True(t, res.N.Cmp(prev) > 0, "e^(%d/16) must exceed e^(%d/16)", i, i-1)
		prev = res.N
	}
}

func TestExpDomain(t *testing.T) {
	// 89 / ln(2) > 127, so the reduction shift cannot be represented
	_, err := Exp(frac(89, 1))
	require.ErrorIs(t, err, oc.ErrExpOverflow)

	_, err = Exp(frac(1000, 1))
	require.ErrorIs(t, err, oc.ErrExpOverflow)

	// scaling the input itself overflows 256 bits
	_, err = Exp(oc.Fraction{N: new(big.Int).Set(oc.MaxUint256), D: big.NewInt(1)})
	require.ErrorIs(t, err, oc.ErrExpOverflow)

	_, err = Exp(oc.Fraction{N: big.NewInt(1), D: big.NewInt(0)})
	require.ErrorIs(t, err, oc.ErrInvalidRate)
}

func TestExpSeriesDomainNote(t *testing.T) {
	// the two reductions must agree where their domains overlap:
	// Exp2(x) == Exp(x * ln2) up to the published precision
	ln2, err := decimal_math.Ln(decimal.NewFromInt(2), 50)
	require.NoError(t, err)
	tol := decimal.New(1, -30)
	for i := int64(1); i <= 24; i++ {
		viaExp2, err := Exp2(frac(i, 2))
		require.NoError(t, err)
		ref := decimal_math.Exp(decimal.NewFromInt(i).DivRound(decimal.NewFromInt(2), 50).Mul(ln2), 50)
		requireRelClose(t, ref, decimal_math.RatioDecimal(viaExp2.N, viaExp2.D, 45), tol, fmt.Sprintf("2^(%d/2)", i))
	}
}
