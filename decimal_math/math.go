package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}

// Pow2 returns 2^n as an exact decimal for n >= 0.
func Pow2(n uint) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), n), 0)
}

// RatioDecimal divides n by d at the given decimal scale.
func RatioDecimal(n, d *big.Int, scale int32) decimal.Decimal {
	return decimal.NewFromBigInt(n, 0).DivRound(decimal.NewFromBigInt(d, 0), scale)
}
