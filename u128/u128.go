package u128

import (
	"errors"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
)

type Uint128 bin.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// FromBig converts a non-negative big integer of at most 128 bits.
func FromBig(v *big.Int) (bin.Uint128, error) {
	if v == nil || v.Sign() < 0 {
		return bin.Uint128{}, errors.New("value cannot be negative")
	}
	if v.BitLen() > 128 {
		return bin.Uint128{}, errors.New("value overflows Uint128")
	}
	out := bin.NewUint128LittleEndian()
	out.Lo = v.Uint64()
	out.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return *out, nil
}

// ToBig converts back to a big integer.
func ToBig(v bin.Uint128) *big.Int {
	return v.BigInt()
}

// FromString parses a decimal string into a Uint128.
func FromString(num string) (bin.Uint128, error) {
	out := bin.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(out)); err != nil {
		return bin.Uint128{}, err
	}
	return *out, nil
}
