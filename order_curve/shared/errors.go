package shared

import "errors"

var (
	// ErrOverflow is returned when an arithmetic result cannot be
	// represented in 256 bits.
	ErrOverflow = errors.New("math: overflow")

	// ErrExpOverflow is returned when an exponential input exceeds the
	// domain supported by the range-reduction scheme.
	ErrExpOverflow = errors.New("math: exp overflow")

	// ErrDivisionByZero is returned when a denominator is zero.
	ErrDivisionByZero = errors.New("math: division by zero")

	// ErrInvalidRate is returned for rate values or encodings outside
	// their validity domain.
	ErrInvalidRate = errors.New("rate: invalid rate")

	// ErrInvalidTradeActionAmount is returned for a zero trade amount or
	// one that would push an order outside its liquidity bounds.
	ErrInvalidTradeActionAmount = errors.New("trade: invalid trade action amount")

	// ErrInvalidOrder is returned for a malformed order state.
	ErrInvalidOrder = errors.New("order: invalid order state")
)
