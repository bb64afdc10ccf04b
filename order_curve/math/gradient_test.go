package math

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gradientswap/gradient-go/decimal_math"
	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// encodeSqrtRate packs floor(sqrt(rate) * 2^48) for an integer rate.
func encodeSqrtRate(t *testing.T, rate int64) uint64 {
	t.Helper()
	v := new(big.Int).Sqrt(new(big.Int).Lsh(big.NewInt(rate), 2*oc.RateMantissaBits))
	packed, err := EncodeRate(v)
	require.NoError(t, err)
	return packed
}

// encodeFactor packs an exact small multi-factor given as num/2^shift.
func encodeFactor(t *testing.T, num int64, shift uint) uint64 {
	t.Helper()
	scaled := new(big.Int).Rsh(new(big.Int).Lsh(big.NewInt(num), oc.RateMantissaBits), shift)
	packed, err := EncodeGradientFactor(scaled)
	require.NoError(t, err)
	return packed
}

// decodedInputs returns the decoded v and m the calculator actually works
// with, so expectations can be computed from the same post-codec values.
func decodedInputs(t *testing.T, initialRate, multiFactor uint64) (v, m *big.Int) {
	t.Helper()
	v, err := DecodeGradientInitialRate(initialRate)
	require.NoError(t, err)
	m, err = DecodeGradientFactor(multiFactor)
	require.NoError(t, err)
	return v, m
}

func TestCalcCurrentRateLinearExact(t *testing.T) {
	initial := encodeSqrtRate(t, 100)
	factor := encodeFactor(t, 1, 10) // 2^-10 per second
	v, m := decodedInputs(t, initial, factor)

	const elapsed = 512
	mt := new(big.Int).Mul(m, big.NewInt(elapsed))
	rateN := new(big.Int).Mul(v, v)

	cases := []struct {
		gradientType oc.GradientType
		wantN        *big.Int
		wantD        *big.Int
	}{
		{
			oc.GradientLinearIncrease,
			new(big.Int).Mul(rateN, new(big.Int).Add(oc.One, mt)),
			new(big.Int).Mul(oc.OneSquared, oc.One),
		},
		{
			oc.GradientLinearDecrease,
			new(big.Int).Mul(rateN, new(big.Int).Sub(oc.One, mt)),
			new(big.Int).Mul(oc.OneSquared, oc.One),
		},
		{
			oc.GradientLinearInvIncrease,
			new(big.Int).Mul(rateN, oc.One),
			new(big.Int).Mul(oc.OneSquared, new(big.Int).Sub(oc.One, mt)),
		},
		{
			oc.GradientLinearInvDecrease,
			new(big.Int).Mul(rateN, oc.One),
			new(big.Int).Mul(oc.OneSquared, new(big.Int).Add(oc.One, mt)),
		},
	}
	for _, tc := range cases {
		f, err := CalcCurrentRate(tc.gradientType, initial, factor, elapsed)
		require.NoError(t, err, tc.gradientType.String())
		require.Zero(t, f.N.Cmp(tc.wantN), tc.gradientType.String())
		require.Zero(t, f.D.Cmp(tc.wantD), tc.gradientType.String())
	}
}

func TestCalcCurrentRateZeroElapsed(t *testing.T) {
	initial := encodeSqrtRate(t, 1234)
	factor := encodeFactor(t, 1, 10)
	v, _ := decodedInputs(t, initial, factor)

	want := decimal_math.RatioDecimal(new(big.Int).Mul(v, v), oc.OneSquared, 30)
	for _, gt := range []oc.GradientType{
		oc.GradientLinearIncrease,
		oc.GradientLinearDecrease,
		oc.GradientLinearInvIncrease,
		oc.GradientLinearInvDecrease,
		oc.GradientExponentialIncrease,
		oc.GradientExponentialDecrease,
	} {
		f, err := CalcCurrentRate(gt, initial, factor, 0)
		require.NoError(t, err, gt.String())
		got := decimal_math.RatioDecimal(f.N, f.D, 30)
		require.True(t, got.Equal(want), "%s at t=0: got %s want %s", gt, got, want)
	}
}

func TestCalcCurrentRateSubtractiveBound(t *testing.T) {
	initial := encodeSqrtRate(t, 100)
	factor := encodeFactor(t, 1, 10)
	_, m := decodedInputs(t, initial, factor)

	// smallest t with m*t >= 2^48
	limit := new(big.Int).Div(oc.One, m).Uint64()

	for _, gt := range []oc.GradientType{oc.GradientLinearDecrease, oc.GradientLinearInvIncrease} {
		_, err := CalcCurrentRate(gt, initial, factor, limit)
		require.ErrorIs(t, err, oc.ErrInvalidRate, gt.String())

		_, err = CalcCurrentRate(gt, initial, factor, limit-1)
		require.NoError(t, err, gt.String())
	}

	// the additive variants have no such bound
	for _, gt := range []oc.GradientType{oc.GradientLinearIncrease, oc.GradientLinearInvDecrease} {
		_, err := CalcCurrentRate(gt, initial, factor, limit)
		require.NoError(t, err, gt.String())
	}
}

func TestCalcCurrentRateExponential(t *testing.T) {
	initial := encodeSqrtRate(t, 100)
	factor := encodeFactor(t, 1, 16) // 2^-16 per second
	v, m := decodedInputs(t, initial, factor)

	rate0 := decimal_math.RatioDecimal(new(big.Int).Mul(v, v), oc.OneSquared, 50)
	tol := decimal.New(1, -30)

	for _, elapsed := range []uint64{1, 60, 3600, 86400} {
		x := decimal_math.RatioDecimal(new(big.Int).Mul(m, new(big.Int).SetUint64(elapsed)), oc.One, 50)

		up, err := CalcCurrentRate(oc.GradientExponentialIncrease, initial, factor, elapsed)
		require.NoError(t, err)
		ref := rate0.Mul(decimal_math.Exp(x, 60))
		got := decimal_math.RatioDecimal(up.N, up.D, 45)
		requireRelClose(t, ref, got, tol, "exponential increase")

		down, err := CalcCurrentRate(oc.GradientExponentialDecrease, initial, factor, elapsed)
		require.NoError(t, err)
		ref = rate0.DivRound(decimal_math.Exp(x, 60), 60)
		got = decimal_math.RatioDecimal(down.N, down.D, 45)
		requireRelClose(t, ref, got, tol, "exponential decrease")

		// the pair straddles the initial rate
		require.True(t, decimal_math.RatioDecimal(up.N, up.D, 45).GreaterThan(decimal_math.RatioDecimal(down.N, down.D, 45)))
	}
}

func TestCalcCurrentRateExponentialOverflow(t *testing.T) {
	initial := encodeSqrtRate(t, 100)
	// m = 1.0 per second: e^(m*t) leaves the representable range at t=89
	factor := encodeFactor(t, 1, 0)

	_, err := CalcCurrentRate(oc.GradientExponentialIncrease, initial, factor, 89)
	require.ErrorIs(t, err, oc.ErrExpOverflow)

	_, err = CalcCurrentRate(oc.GradientExponentialIncrease, initial, factor, 88)
	require.NoError(t, err)

	// the decaying variant hits the same reduction bound
	_, err = CalcCurrentRate(oc.GradientExponentialDecrease, initial, factor, 89)
	require.ErrorIs(t, err, oc.ErrExpOverflow)
}

func TestCalcCurrentRateRejectsBadInputs(t *testing.T) {
	initial := encodeSqrtRate(t, 100)
	factor := encodeFactor(t, 1, 10)

	_, err := CalcCurrentRate(oc.GradientType(99), initial, factor, 1)
	require.ErrorIs(t, err, oc.ErrInvalidRate)

	badRate := uint64(49)<<oc.RateMantissaBits | oc.RateMantissaMask
	_, err = CalcCurrentRate(oc.GradientLinearIncrease, badRate, factor, 1)
	require.ErrorIs(t, err, oc.ErrInvalidRate)

	badFactor := uint64(17)<<oc.RateMantissaBits | oc.RateMantissaMask
	_, err = CalcCurrentRate(oc.GradientLinearIncrease, initial, badFactor, 1)
	require.ErrorIs(t, err, oc.ErrInvalidRate)
}

func TestCalcCurrentRateResultFits256Bits(t *testing.T) {
	// worst case additive growth: large initial rate, large factor, long
	// elapsed time
	vMax := new(big.Int).Sub(oc.MaxScaledRate, big.NewInt(1))
	packedV, err := EncodeRate(vMax)
	require.NoError(t, err)
	mMax := new(big.Int).Sub(oc.MaxScaledFactor, big.NewInt(1))
	packedM, err := EncodeGradientFactor(mMax)
	require.NoError(t, err)

	for _, gt := range []oc.GradientType{oc.GradientLinearIncrease, oc.GradientLinearInvDecrease} {
		f, err := CalcCurrentRate(gt, packedV, packedM, 1<<40)
		require.NoError(t, err, gt.String())
		require.True(t, f.Valid(), gt.String())
	}
}
