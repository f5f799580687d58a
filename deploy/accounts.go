package deploy

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
)

// Accounts is the ordered list of keys a network provides to the scripts.
type Accounts struct {
	keys []*crypto.PrivateKey
}

// NewAccounts returns the accounts controlled by given keys.
func NewAccounts(keys []*crypto.PrivateKey) *Accounts {
	return &Accounts{keys: keys}
}

// DeriveAccounts returns n accounts derived from a seed phrase. The same
// phrase always produces the same accounts.
func DeriveAccounts(phrase string, n int) (*Accounts, error) {
	keys, err := crypto.DeriveKeys(phrase, n)
	if err != nil {
		return nil, err
	}
	return NewAccounts(keys), nil
}

// ParseAccounts returns the accounts of hex encoded private keys.
func ParseAccounts(hexKeys []string) (*Accounts, error) {
	if len(hexKeys) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "keys")
	}
	keys := make([]*crypto.PrivateKey, len(hexKeys))
	for i, h := range hexKeys {
		k, err := crypto.ParsePrivateKeyHex(h)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		keys[i] = k
	}
	return NewAccounts(keys), nil
}

// Len returns the number of accounts.
func (a *Accounts) Len() int {
	return len(a.keys)
}

// Key returns the key of the account at position i.
func (a *Accounts) Key(i int) (*crypto.PrivateKey, error) {
	if i < 0 || i >= len(a.keys) {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %d of %d", i, len(a.keys))
	}
	return a.keys[i], nil
}

// Address returns the address of the account at position i, or nil if
// there is no such account.
func (a *Accounts) Address(i int) quorum.Address {
	k, err := a.Key(i)
	if err != nil {
		return nil
	}
	return k.PublicKey().Address()
}

// Addresses returns all addresses, in order.
func (a *Accounts) Addresses() []quorum.Address {
	return crypto.Addresses(a.keys)
}

// Range returns the addresses of accounts from (inclusive) to to
// (exclusive).
func (a *Accounts) Range(from, to int) ([]quorum.Address, error) {
	if from < 0 || from > to {
		return nil, errors.Wrapf(errors.ErrInput, "invalid range [%d, %d)", from, to)
	}
	if to > len(a.keys) {
		return nil, errors.Wrapf(errors.ErrNotFound, "%d accounts requested, network provides %d", to, len(a.keys))
	}
	return crypto.Addresses(a.keys[from:to]), nil
}
