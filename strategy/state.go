package strategy

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"

	curve "github.com/gradientswap/gradient-go/order_curve/math"
	"github.com/gradientswap/gradient-go/u128"
)

// OrderRecord is the fixed storage layout of one order: y and z as
// little-endian 128-bit integers, A and B packed rates as uint64.
type OrderRecord struct {
	Y bin.Uint128
	Z bin.Uint128
	A uint64
	B uint64
}

// StrategyRecord is the persisted form of a strategy.
type StrategyRecord struct {
	ID     uint64
	Base   string
	Quote  string
	Orders [2]OrderRecord
}

// MarshalBinary encodes the record with the borsh wire layout.
func (r StrategyRecord) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a record previously produced by MarshalBinary.
func (r *StrategyRecord) UnmarshalBinary(data []byte) error {
	return bin.NewBorshDecoder(data).Decode(r)
}

// RecordFromStrategy converts an in-memory strategy to its storage form.
func RecordFromStrategy(s Strategy) (StrategyRecord, error) {
	if err := s.Validate(); err != nil {
		return StrategyRecord{}, err
	}
	rec := StrategyRecord{ID: s.ID, Base: s.Base, Quote: s.Quote}
	for i := range s.Orders {
		y, err := u128.FromBig(s.Orders[i].Y)
		if err != nil {
			return StrategyRecord{}, fmt.Errorf("order %d y: %w", i, err)
		}
		z, err := u128.FromBig(s.Orders[i].Z)
		if err != nil {
			return StrategyRecord{}, fmt.Errorf("order %d z: %w", i, err)
		}
		rec.Orders[i] = OrderRecord{Y: y, Z: z, A: s.Orders[i].A, B: s.Orders[i].B}
	}
	return rec, nil
}

// StrategyFromRecord converts a storage record back, validating the
// decoded orders before they reach any arithmetic.
func StrategyFromRecord(rec StrategyRecord) (Strategy, error) {
	s := Strategy{ID: rec.ID, Base: rec.Base, Quote: rec.Quote}
	for i, o := range rec.Orders {
		order := curve.Order{
			Y: u128.ToBig(o.Y),
			Z: u128.ToBig(o.Z),
			A: o.A,
			B: o.B,
		}
		if err := order.Validate(); err != nil {
			return Strategy{}, fmt.Errorf("order %d: %w", i, err)
		}
		s.Orders[i] = order
	}
	return s, nil
}
