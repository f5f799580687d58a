/*
Package storage implements SimpleStorage, a contract holding a single
unsigned 256 bit value that anyone can change.
*/
package storage

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/artifact"
)

// ArtifactName is the name SimpleStorage is deployed under.
const ArtifactName = "SimpleStorage"

// Storage is the state of a single SimpleStorage instance.
type Storage struct {
	Metadata quorum.Metadata
	Value    coin.Amount
}

var _ orm.Model = (*Storage)(nil)

func (s *Storage) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Value", s.Value.Validate())
	return errs
}

// NewBucket returns the bucket of storage instances keyed by the instance
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("storage", &Storage{})
}

// Get returns the value held by given contract instance.
func Get(db quorum.ReadOnlyKVStore, contract quorum.Address) (coin.Amount, error) {
	var s Storage
	if err := NewBucket().One(db, contract, &s); err != nil {
		return nil, err
	}
	return s.Value, nil
}

// Artifact deploys SimpleStorage instances.
type Artifact struct{}

var _ artifact.Artifact = Artifact{}

func (Artifact) Name() string {
	return ArtifactName
}

func (Artifact) NewArgs() artifact.ConstructorArgs {
	return &artifact.NoArgs{}
}

// Instantiate creates the storage of a new instance, holding zero.
func (Artifact) Instantiate(ctx quorum.Context, db quorum.KVStore, instance, creator quorum.Address, args artifact.ConstructorArgs) error {
	b := NewBucket()
	if err := b.Has(db, instance); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "storage %s", instance)
	}
	s := &Storage{
		Metadata: quorum.Metadata{Schema: 1},
		Value:    coin.NewAmount(0),
	}
	_, err := b.Put(db, instance, s)
	return err
}
