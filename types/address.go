package types

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// AddressLen is the length in bytes of a ledger account address.
const AddressLen = 32

// ErrInvalidAddress signals that a string is not a valid account address.
var ErrInvalidAddress = errors.New("invalid account address")

// Address identifies an account on the ledger.
type Address [AddressLen]byte

// AddressFromString decodes the base58 text form of an address.
func AddressFromString(s string) (Address, error) {
	var a Address
	raw := base58.Decode(s)
	if len(raw) != AddressLen {
		return a, errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	copy(a[:], raw)
	return a, nil
}

// MustAddressFromString is an AddressFromString that panics on invalid
// input, for use in tests and package level fixtures.
func MustAddressFromString(s string) Address {
	a, err := AddressFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bytes returns the raw address bytes, for use as a derivation seed.
func (a Address) Bytes() []byte {
	return a[:]
}

// Less orders addresses lexicographically, for deterministic iteration.
func (a Address) Less(other Address) bool {
	return bytes.Compare(a[:], other[:]) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
