/*
Package coin implements the native value transferred between accounts.

An Amount is an unsigned integer of at most 256 bits. The binary form is
exactly 32 big endian bytes, the human form is a decimal string.
*/
package coin

import (
	"encoding/json"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/quorum/errors"
)

// amountLen is the size of a serialized, non zero amount.
const amountLen = 32

// Amount is a 256 bit unsigned integer. A nil or empty Amount is zero.
type Amount []byte

// NewAmount returns an amount holding given value.
func NewAmount(n uint64) Amount {
	return FromInt(uint256.NewInt(n))
}

// FromInt converts an integer into an Amount.
func FromInt(i *uint256.Int) Amount {
	b := i.Bytes32()
	return Amount(b[:])
}

// ParseAmount parses a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "amount")
	}
	i, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrAmount, "%q: %s", s, err)
	}
	return FromInt(i), nil
}

// MustParseAmount is like ParseAmount but panics on error. Use it only for
// constants and in tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Int returns the integer value of the amount.
func (a Amount) Int() *uint256.Int {
	if len(a) == 0 {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).SetBytes(a)
}

// Validate returns an error if the amount is not properly serialized.
func (a Amount) Validate() error {
	if len(a) != 0 && len(a) != amountLen {
		return errors.Wrapf(errors.ErrAmount, "amount must be %d bytes, got %d", amountLen, len(a))
	}
	return nil
}

// Add returns the sum of both amounts. It fails if the result does not fit
// in 256 bits.
func (a Amount) Add(o Amount) (Amount, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.Int(), o.Int())
	if overflow {
		return nil, errors.Wrap(errors.ErrOverflow, "amount")
	}
	return FromInt(sum), nil
}

// Subtract returns a - o. It fails if o is greater than a.
func (a Amount) Subtract(o Amount) (Amount, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a.Int(), o.Int())
	if underflow {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "cannot subtract %s from %s", o, a)
	}
	return FromInt(diff), nil
}

// Compare returns -1, 0 or 1 when a is lower, equal or greater than o.
func (a Amount) Compare(o Amount) int {
	return a.Int().Cmp(o.Int())
}

// Equals returns true if both amounts hold the same value.
func (a Amount) Equals(o Amount) bool {
	return a.Compare(o) == 0
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.Int().IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return !a.IsZero()
}

// IsGTE returns true if a is greater than or equal to o.
func (a Amount) IsGTE(o Amount) bool {
	return a.Compare(o) >= 0
}

// Clone returns an independent copy of the amount.
func (a Amount) Clone() Amount {
	if a == nil {
		return nil
	}
	return append(Amount(nil), a...)
}

// String returns the decimal representation.
func (a Amount) String() string {
	return a.Int().Dec()
}

// MarshalJSON serializes the amount as a decimal string. Numbers do not fit
// in JSON numbers without losing precision.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrapf(errors.ErrAmount, "invalid amount: %s", raw)
		}
		s = n.String()
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Set implements flag.Value and pflag.Value.
func (a *Amount) Set(raw string) error {
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Type implements pflag.Value.
func (a *Amount) Type() string {
	return "amount"
}
