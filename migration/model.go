package migration

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/artifact"
)

// ArtifactName is the name Migrations is deployed under.
const ArtifactName = "Migrations"

// Migrations is the state of a Migrations instance.
type Migrations struct {
	Metadata               quorum.Metadata
	Owner                  quorum.Address
	LastCompletedMigration uint64
}

var _ orm.Model = (*Migrations)(nil)

func (m *Migrations) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// NewBucket returns the bucket of Migrations instances keyed by the instance
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("migrations", &Migrations{})
}

// Load returns the state of the Migrations instance.
func Load(db quorum.ReadOnlyKVStore, contract quorum.Address) (*Migrations, error) {
	var m Migrations
	if err := NewBucket().One(db, contract, &m); err != nil {
		return nil, errors.Wrap(err, "migrations")
	}
	return &m, nil
}

// Artifact deploys Migrations instances. The creator becomes the owner.
type Artifact struct{}

var _ artifact.Artifact = Artifact{}

func (Artifact) Name() string {
	return ArtifactName
}

func (Artifact) NewArgs() artifact.ConstructorArgs {
	return &artifact.NoArgs{}
}

func (Artifact) Instantiate(ctx quorum.Context, db quorum.KVStore, instance, creator quorum.Address, args artifact.ConstructorArgs) error {
	b := NewBucket()
	if err := b.Has(db, instance); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "migrations %s", instance)
	}
	m := &Migrations{
		Metadata: quorum.Metadata{Schema: 1},
		Owner:    creator,
	}
	if _, err := b.Put(db, instance, m); err != nil {
		return errors.Wrap(err, "save migrations")
	}
	return nil
}
