package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Amount is a 128-bit unsigned token quantity. All arithmetic is checked:
// results that would not fit in 128 bits are reported through the ok return
// instead of wrapping. The zero value is a valid zero amount.
type Amount struct {
	hi uint64
	lo uint64
}

// MaxAmount is the largest representable token quantity, 2^128 - 1.
var MaxAmount = Amount{hi: ^uint64(0), lo: ^uint64(0)}

// NewAmount converts a uint64 into an Amount.
func NewAmount(v uint64) Amount {
	return Amount{lo: v}
}

// AmountFromUint256 converts a uint256 integer into an Amount. It reports
// false if the value does not fit in 128 bits.
func AmountFromUint256(v *uint256.Int) (Amount, bool) {
	if v.BitLen() > 128 {
		return Amount{}, false
	}
	return Amount{hi: v[1], lo: v[0]}, true
}

// AmountFromString parses a base-10 amount string.
func AmountFromString(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	a, ok := AmountFromUint256(v)
	if !ok {
		return Amount{}, fmt.Errorf("amount %q exceeds 128 bits", s)
	}
	return a, nil
}

// ToUint256 widens the amount into a uint256 integer.
func (a Amount) ToUint256() *uint256.Int {
	return &uint256.Int{a.lo, a.hi, 0, 0}
}

// Add returns a+b. ok is false if the sum overflows 128 bits, in which case
// the returned amount is meaningless.
func (a Amount) Add(b Amount) (Amount, bool) {
	sum, overflow := new(uint256.Int).AddOverflow(a.ToUint256(), b.ToUint256())
	if overflow {
		return Amount{}, false
	}
	return AmountFromUint256(sum)
}

// Sub returns a-b. ok is false if b exceeds a.
func (a Amount) Sub(b Amount) (Amount, bool) {
	diff, underflow := new(uint256.Int).SubOverflow(a.ToUint256(), b.ToUint256())
	if underflow {
		return Amount{}, false
	}
	return AmountFromUint256(diff)
}

// MulBPS returns a*bps/10000, the basis-point share used for fee splitting.
// The multiplication is carried out at 256-bit width, so it cannot overflow
// and the result always fits back into 128 bits.
func (a Amount) MulBPS(bps uint16) Amount {
	v := new(uint256.Int).Mul(a.ToUint256(), uint256.NewInt(uint64(bps)))
	v.Div(v, uint256.NewInt(10000))
	share, _ := AmountFromUint256(v)
	return share
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.ToUint256().Cmp(b.ToUint256())
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.hi == 0 && a.lo == 0
}

// String returns the base-10 representation of the amount.
func (a Amount) String() string {
	return a.ToUint256().Dec()
}

// Bytes16 returns the big-endian 16-byte representation of the amount.
func (a Amount) Bytes16() [16]byte {
	var out [16]byte
	full := a.ToUint256().Bytes32()
	copy(out[:], full[16:])
	return out
}

// AmountFromBytes16 decodes a big-endian 16-byte amount.
func AmountFromBytes16(b [16]byte) Amount {
	var full [32]byte
	copy(full[16:], b[:])
	v := new(uint256.Int).SetBytes32(full[:])
	a, _ := AmountFromUint256(v)
	return a
}
