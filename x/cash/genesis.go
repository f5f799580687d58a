package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct {
	Minter CoinMinter
}

var _ quorum.Initializer = (*Initializer)(nil)

// GenesisAccount is a single funded account as declared in the genesis file.
type GenesisAccount struct {
	Address quorum.Address `json:"address"`
	Balance coin.Amount    `json:"balance"`
}

// FromGenesis will parse initial account info from genesis and save it to
// the database
func (i *Initializer) FromGenesis(opts quorum.Options, params quorum.GenesisParams, kv quorum.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	minter := i.Minter
	if minter == nil {
		minter = NewController()
	}
	for n, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
		if err := minter.CoinMint(kv, acc.Address, acc.Balance); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
