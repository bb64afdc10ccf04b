package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// TradeResult carries the computed counterpart amount and the post-trade
// order state. The input order is never mutated; on error no result is
// produced at all.
type TradeResult struct {
	Amount *big.Int
	Order  Order
}

// TradeBySource trades a source amount against the order and returns the
// target amount sent to the taker, floored so rounding always favors the
// liquidity provider.
func TradeBySource(order Order, sourceAmount *big.Int) (TradeResult, error) {
	if err := order.Validate(); err != nil {
		return TradeResult{}, err
	}
	if sourceAmount == nil || sourceAmount.Sign() <= 0 {
		return TradeResult{}, oc.ErrInvalidTradeActionAmount
	}
	target, err := tradeTargetAmount(sourceAmount, order)
	if err != nil {
		return TradeResult{}, err
	}
	if target.Cmp(order.Y) > 0 {
		return TradeResult{}, oc.ErrInvalidTradeActionAmount
	}
	next := order.clone()
	next.Y.Sub(next.Y, target)
	return TradeResult{Amount: target, Order: next}, nil
}

// TradeByTarget trades a target amount out of the order and returns the
// source amount the taker must pay, ceiled so rounding always favors the
// liquidity provider.
func TradeByTarget(order Order, targetAmount *big.Int) (TradeResult, error) {
	if err := order.Validate(); err != nil {
		return TradeResult{}, err
	}
	if targetAmount == nil || targetAmount.Sign() <= 0 {
		return TradeResult{}, oc.ErrInvalidTradeActionAmount
	}
	if targetAmount.Cmp(order.Y) > 0 {
		return TradeResult{}, oc.ErrInvalidTradeActionAmount
	}
	source, err := tradeSourceAmount(targetAmount, order)
	if err != nil {
		return TradeResult{}, err
	}
	next := order.clone()
	next.Y.Sub(next.Y, targetAmount)
	return TradeResult{Amount: source, Order: next}, nil
}

// tradeTargetAmount evaluates the curve integral
//
//	x * (A*y + B*z)^2
//	---------------------------------
//	A*x * (A*y + B*z) + (z*ONE)^2
//
// rounded down. Oversized intermediates are rescaled by the smallest safe
// denominator so every division runs through the 256-bit mulDiv entry
// points; the denominator halves round up to keep the result a floor.
func tradeTargetAmount(x *big.Int, o Order) (*big.Int, error) {
	a, err := DecodeRate(o.A)
	if err != nil {
		return nil, err
	}
	b, err := DecodeRate(o.B)
	if err != nil {
		return nil, err
	}
	if a.Sign() == 0 {
		return MulDivFloor(x, new(big.Int).Mul(b, b), oc.OneSquared)
	}

	temp1 := new(big.Int).Mul(o.Z, oc.One)
	temp2 := new(big.Int).Add(new(big.Int).Mul(o.Y, a), new(big.Int).Mul(o.Z, b))
	temp3 := new(big.Int).Mul(temp2, x)
	if temp3.Cmp(oc.MaxUint256) > 0 {
		return nil, oc.ErrOverflow
	}

	factor := maxBig(MinFactor(temp1, temp1), MinFactor(temp3, a))
	temp4, err := MulDivCeil(temp1, temp1, factor)
	if err != nil {
		return nil, err
	}
	temp5, err := MulDivCeil(temp3, a, factor)
	if err != nil {
		return nil, err
	}
	denom := new(big.Int).Add(temp4, temp5)
	if denom.Cmp(oc.MaxUint256) > 0 {
		return nil, oc.ErrOverflow
	}
	return MulDivFloor(temp2, new(big.Int).Div(temp3, factor), denom)
}

// tradeSourceAmount evaluates the inverse form
//
//	x * (z*ONE)^2
//	-------------------------------------------
//	(A*y + B*z) * (A*y + B*z - A*x)
//
// rounded up: the numerator half rounds up and the denominator half
// rounds down before the final ceiling division.
func tradeSourceAmount(x *big.Int, o Order) (*big.Int, error) {
	a, err := DecodeRate(o.A)
	if err != nil {
		return nil, err
	}
	b, err := DecodeRate(o.B)
	if err != nil {
		return nil, err
	}
	if a.Sign() == 0 {
		return MulDivCeil(x, oc.OneSquared, new(big.Int).Mul(b, b))
	}

	temp1 := new(big.Int).Mul(o.Z, oc.One)
	temp2 := new(big.Int).Add(new(big.Int).Mul(o.Y, a), new(big.Int).Mul(o.Z, b))
	xa := new(big.Int).Mul(x, a)
	if xa.Cmp(temp2) >= 0 {
		return nil, oc.ErrInvalidTradeActionAmount
	}
	temp3 := xa.Sub(temp2, xa)

	factor := maxBig(MinFactor(temp1, temp1), MinFactor(temp2, temp3))
	temp4, err := MulDivCeil(temp1, temp1, factor)
	if err != nil {
		return nil, err
	}
	temp5, err := MulDivFloor(temp2, temp3, factor)
	if err != nil {
		return nil, err
	}
	if temp5.Sign() == 0 {
		return nil, oc.ErrOverflow
	}
	return MulDivCeil(x, temp4, temp5)
}
