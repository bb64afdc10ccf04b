package strategy

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	curve "github.com/gradientswap/gradient-go/order_curve/math"
	oc "github.com/gradientswap/gradient-go/order_curve/shared"
)

// Strategy is a pair of orders quoting both directions of a token pair.
// Orders[0] sells the base token, Orders[1] sells the quote token; each
// order's Y is denominated in the token it sells.
type Strategy struct {
	ID     uint64
	Base   string
	Quote  string
	Orders [2]curve.Order
}

// OrderParams describes one side of a new strategy in human-readable
// decimal rates (units of the opposite token per unit sold).
type OrderParams struct {
	Liquidity *big.Int
	Lowest    decimal.Decimal
	Highest   decimal.Decimal
	Marginal  decimal.Decimal
}

// CreateStrategy builds both orders from decimal rate bounds. Each side
// starts fully reset (marginal == highest) unless a lower marginal rate
// is supplied.
func CreateStrategy(id uint64, base, quote string, params [2]OrderParams) (Strategy, error) {
	s := Strategy{ID: id, Base: base, Quote: quote}
	for i, p := range params {
		lowest, err := ScaledRateFromDecimal(p.Lowest)
		if err != nil {
			return Strategy{}, fmt.Errorf("order %d lowest: %w", i, err)
		}
		highest, err := ScaledRateFromDecimal(p.Highest)
		if err != nil {
			return Strategy{}, fmt.Errorf("order %d highest: %w", i, err)
		}
		marginal, err := ScaledRateFromDecimal(p.Marginal)
		if err != nil {
			return Strategy{}, fmt.Errorf("order %d marginal: %w", i, err)
		}
		order, err := curve.FromRates(p.Liquidity, lowest, highest, marginal)
		if err != nil {
			return Strategy{}, fmt.Errorf("order %d: %w", i, err)
		}
		s.Orders[i] = order
	}
	return s, nil
}

// Validate checks both orders.
func (s Strategy) Validate() error {
	for i := range s.Orders {
		if err := s.Orders[i].Validate(); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
	}
	return nil
}

// ApplyTradeBySource trades sourceAmount of the counter token against the
// order on targetSide and credits the counter order. Returns the target
// amount and the post-trade strategy; the input strategy is untouched on
// error.
func (s Strategy) ApplyTradeBySource(targetSide int, sourceAmount *big.Int) (*big.Int, Strategy, error) {
	if targetSide != 0 && targetSide != 1 {
		return nil, Strategy{}, oc.ErrInvalidOrder
	}
	res, err := curve.TradeBySource(s.Orders[targetSide], sourceAmount)
	if err != nil {
		return nil, Strategy{}, err
	}
	counter, err := creditOrder(s.Orders[1-targetSide], sourceAmount)
	if err != nil {
		return nil, Strategy{}, err
	}
	next := s
	next.Orders[targetSide] = res.Order
	next.Orders[1-targetSide] = counter
	return res.Amount, next, nil
}

// ApplyTradeByTarget trades targetAmount out of the order on targetSide
// and credits the counter order with the computed source amount.
func (s Strategy) ApplyTradeByTarget(targetSide int, targetAmount *big.Int) (*big.Int, Strategy, error) {
	if targetSide != 0 && targetSide != 1 {
		return nil, Strategy{}, oc.ErrInvalidOrder
	}
	res, err := curve.TradeByTarget(s.Orders[targetSide], targetAmount)
	if err != nil {
		return nil, Strategy{}, err
	}
	counter, err := creditOrder(s.Orders[1-targetSide], res.Amount)
	if err != nil {
		return nil, Strategy{}, err
	}
	next := s
	next.Orders[targetSide] = res.Order
	next.Orders[1-targetSide] = counter
	return res.Amount, next, nil
}

// creditOrder adds received liquidity to an order. A credit that lifts Y
// above Z resets the curve (Z follows Y), keeping 0 <= Y <= Z.
func creditOrder(o curve.Order, amount *big.Int) (curve.Order, error) {
	if err := o.Validate(); err != nil {
		return curve.Order{}, err
	}
	y := new(big.Int).Add(o.Y, amount)
	if y.Cmp(oc.MaxUint128) > 0 {
		return curve.Order{}, oc.ErrOverflow
	}
	z := new(big.Int).Set(o.Z)
	if y.Cmp(z) > 0 {
		z.Set(y)
	}
	return curve.Order{Y: y, Z: z, A: o.A, B: o.B}, nil
}
