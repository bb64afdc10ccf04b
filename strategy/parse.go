package strategy

import (
	"fmt"
	"math/big"

	"github.com/tidwall/gjson"

	curve "github.com/gradientswap/gradient-go/order_curve/math"
)

// ParseStrategy reads a strategy document of the form
//
//	{
//	  "id": 1,
//	  "baseToken": "ETH",
//	  "quoteToken": "USDC",
//	  "orders": [
//	    {"y": "800000000000000000", "z": "1000000000000000000", "A": 1234, "B": 5678},
//	    {"y": "2000000000", "z": "2000000000", "A": 1234, "B": 5678}
//	  ]
//	}
//
// Liquidity values may be JSON numbers or decimal strings.
func ParseStrategy(data []byte) (Strategy, error) {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Strategy{}, fmt.Errorf("strategy: not a JSON object")
	}
	orders := doc.Get("orders").Array()
	if len(orders) != 2 {
		return Strategy{}, fmt.Errorf("strategy: expected 2 orders, got %d", len(orders))
	}
	s := Strategy{
		ID:    doc.Get("id").Uint(),
		Base:  doc.Get("baseToken").String(),
		Quote: doc.Get("quoteToken").String(),
	}
	for i, res := range orders {
		order, err := ParseOrder(res)
		if err != nil {
			return Strategy{}, fmt.Errorf("strategy: order %d: %w", i, err)
		}
		s.Orders[i] = order
	}
	return s, nil
}

// ParseOrder reads a single order object and validates it.
func ParseOrder(res gjson.Result) (curve.Order, error) {
	if !res.IsObject() {
		return curve.Order{}, fmt.Errorf("not a JSON object")
	}
	y, err := parseBig(res.Get("y"))
	if err != nil {
		return curve.Order{}, fmt.Errorf("y: %w", err)
	}
	z, err := parseBig(res.Get("z"))
	if err != nil {
		return curve.Order{}, fmt.Errorf("z: %w", err)
	}
	order := curve.Order{
		Y: y,
		Z: z,
		A: res.Get("A").Uint(),
		B: res.Get("B").Uint(),
	}
	if err := order.Validate(); err != nil {
		return curve.Order{}, err
	}
	return order, nil
}

func parseBig(res gjson.Result) (*big.Int, error) {
	if !res.Exists() {
		return nil, fmt.Errorf("missing value")
	}
	v, ok := new(big.Int).SetString(res.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", res.String())
	}
	return v, nil
}
