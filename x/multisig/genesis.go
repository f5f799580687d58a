package multisig

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/x/artifact"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ quorum.Initializer = (*Initializer)(nil)

// GenesisWallet is a wallet deployed at the chain start. The first owner is
// recorded as the creator.
type GenesisWallet struct {
	Owners   []quorum.Address `json:"owners"`
	Required uint32           `json:"required"`
}

// FromGenesis stores the configuration, if present, and deploys all
// declared wallets in the order they are listed.
func (*Initializer) FromGenesis(opts quorum.Options, params quorum.GenesisParams, kv quorum.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, gconfPackage, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var wallets []GenesisWallet
	if err := opts.ReadOptions("multisig", &wallets); err != nil {
		return err
	}
	ctx := context.Background()
	for i, w := range wallets {
		args := &ConstructorArgs{Owners: w.Owners, Required: w.Required}
		if err := args.Validate(); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		if _, err := artifact.Deploy(ctx, kv, Artifact{}, w.Owners[0], args); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
	}
	return nil
}
