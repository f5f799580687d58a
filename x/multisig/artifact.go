package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/artifact"
)

// ArtifactName is the name MultiSignatureWallet is deployed under.
const ArtifactName = "MultiSignatureWallet"

// ConstructorArgs are the arguments of a new wallet.
type ConstructorArgs struct {
	Owners   []quorum.Address
	Required uint32
}

var _ artifact.ConstructorArgs = (*ConstructorArgs)(nil)

func (a *ConstructorArgs) Validate() error {
	return validateOwners(a.Owners, a.Required)
}

// Artifact deploys MultiSignatureWallet instances.
type Artifact struct{}

var _ artifact.Artifact = Artifact{}

func (Artifact) Name() string {
	return ArtifactName
}

func (Artifact) NewArgs() artifact.ConstructorArgs {
	return &ConstructorArgs{}
}

// Instantiate creates a wallet with the given owners. Besides the argument
// validation, the number of owners is limited by the configuration.
func (Artifact) Instantiate(ctx quorum.Context, db quorum.KVStore, instance, creator quorum.Address, args artifact.ConstructorArgs) error {
	a, ok := args.(*ConstructorArgs)
	if !ok {
		return errors.Wrapf(errors.ErrType, "%T", args)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if len(a.Owners) > int(conf.MaxOwnerCount) {
		return errors.Wrapf(ErrInvalidRequirement, "%d owners, at most %d allowed", len(a.Owners), conf.MaxOwnerCount)
	}

	b := NewWalletBucket()
	if err := b.Has(db, instance); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "wallet %s", instance)
	}
	w := &Wallet{
		Metadata: quorum.Metadata{Schema: 1},
		Owners:   a.Owners,
		Required: a.Required,
	}
	if _, err := b.Put(db, instance, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}
