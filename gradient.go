package gradient

import (
	curve "github.com/gradientswap/gradient-go/order_curve/math"
	"github.com/gradientswap/gradient-go/strategy"
)

// TradeBySource quotes a trade for a given source amount.
//
// Example:
//
// res, _ := gradient.TradeBySource(order, big.NewInt(1_000_000))
//
// fmt.Println(res.Amount, res.Order.Y)
var TradeBySource = curve.TradeBySource

// TradeByTarget quotes a trade for a given target amount.
var TradeByTarget = curve.TradeByTarget

// CalcCurrentRate evaluates a gradient curve after a number of elapsed
// seconds.
//
// Example:
//
// f, _ := gradient.CalcCurrentRate(shared.GradientExponentialIncrease, initial, factor, 3600)
var CalcCurrentRate = curve.CalcCurrentRate

// CreateStrategy builds a two-sided strategy from decimal rate bounds.
var CreateStrategy = strategy.CreateStrategy

// ParseStrategy reads a strategy JSON document.
var ParseStrategy = strategy.ParseStrategy
