package math

import (
	"math/big"

	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// Order is one side of a strategy: a linear bonding curve between a
// lowest and highest rate.
//
//   - Y is the remaining tradable liquidity of the order's own token.
//   - Z is the capacity constant; together with Y it locates the marginal
//     rate on the curve, and equals Y exactly when the marginal rate
//     equals the highest rate.
//   - A is the encoded (highest - lowest) rate span.
//   - B is the encoded lowest rate.
//
// The marginal rate for the next unit traded is lowest + span * (Y/Z),
// with Y == Z meaning marginal == highest exactly.
type Order struct {
	Y *big.Int
	Z *big.Int
	A uint64
	B uint64
}

// Validate checks the order state invariants: 0 <= Y <= Z <= 2^128-1 and
// both rate encodings within their ceiling.
func (o Order) Validate() error {
	if o.Y == nil || o.Z == nil {
		return oc.ErrInvalidOrder
	}
	if o.Y.Sign() < 0 || o.Y.Cmp(o.Z) > 0 || o.Z.Cmp(oc.MaxUint128) > 0 {
		return oc.ErrInvalidOrder
	}
	if _, err := DecodeRate(o.A); err != nil {
		return err
	}
	if _, err := DecodeRate(o.B); err != nil {
		return err
	}
	return nil
}

// clone returns an independent copy of the order.
func (o Order) clone() Order {
	return Order{
		Y: new(big.Int).Set(o.Y),
		Z: new(big.Int).Set(o.Z),
		A: o.A,
		B: o.B,
	}
}

// FromRates builds an order from its liquidity and scaled lowest, highest
// and marginal rates. When marginal == highest the curve sits fully reset
// and Y == Z == liquidity; otherwise the capacity is
// ceil(liquidity * (highest-lowest) / (marginal-lowest)), rounded up so
// that Z >= Y always holds.
func FromRates(liquidity, lowest, highest, marginal *big.Int) (Order, error) {
	if liquidity == nil || lowest == nil || highest == nil || marginal == nil {
		return Order{}, oc.ErrInvalidOrder
	}
	if liquidity.Sign() < 0 || liquidity.Cmp(oc.MaxUint128) > 0 {
		return Order{}, oc.ErrInvalidOrder
	}
	if lowest.Sign() < 0 || lowest.Cmp(marginal) > 0 || marginal.Cmp(highest) > 0 {
		return Order{}, oc.ErrInvalidRate
	}

	span := new(big.Int).Sub(highest, lowest)
	a, err := EncodeRate(span)
	if err != nil {
		return Order{}, err
	}
	b, err := EncodeRate(lowest)
	if err != nil {
		return Order{}, err
	}

	y := new(big.Int).Set(liquidity)
	z := new(big.Int).Set(liquidity)
	if marginal.Cmp(highest) < 0 {
		if liquidity.Sign() > 0 {
			delta := new(big.Int).Sub(marginal, lowest)
			if delta.Sign() == 0 {
				// a positive amount of liquidity cannot sit at the
				// very end of a non-degenerate curve
				return Order{}, oc.ErrInvalidRate
			}
			z, err = MulDiv(liquidity, span, delta, oc.RoundingUp)
			if err != nil {
				return Order{}, err
			}
			if z.Cmp(oc.MaxUint128) > 0 {
				return Order{}, oc.ErrOverflow
			}
		}
	}
	return Order{Y: y, Z: z, A: a, B: b}, nil
}

// ToRates decodes the order back into (liquidity, lowest, highest,
// marginal) scaled rates. The marginal rate floors on the interpolation so
// surfaced rates never overstate the value available to the taker; it is
// exactly the highest rate when Y == Z.
func ToRates(o Order) (liquidity, lowest, highest, marginal *big.Int, err error) {
	if err = o.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	span, err := DecodeRate(o.A)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	lowest, err = DecodeRate(o.B)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	highest = new(big.Int).Add(lowest, span)
	if o.Y.Cmp(o.Z) == 0 {
		marginal = new(big.Int).Set(highest)
	} else {
		step, err := MulDiv(span, o.Y, o.Z, oc.RoundingDown)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		marginal = new(big.Int).Add(lowest, step)
	}
	return new(big.Int).Set(o.Y), lowest, highest, marginal, nil
}
