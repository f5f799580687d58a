package artifact

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	// ExtensionName is used for the instance conditions.
	ExtensionName = "artifact"

	bucketName = "instance"
)

// Instance is a deployed contract.
type Instance struct {
	Metadata quorum.Metadata
	Artifact string
	Creator  quorum.Address
	Address  quorum.Address
	// Seq is the sequence value the address is derived from.
	Seq    uint64
	Height int64
}

var _ orm.Model = (*Instance)(nil)

func (i *Instance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", i.Metadata.Validate())
	if i.Artifact == "" {
		errs = errors.AppendField(errs, "Artifact", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Creator", i.Creator.Validate())
	if err := i.Address.Validate(); err != nil {
		errs = errors.AppendField(errs, "Address", err)
	} else if !i.Address.Equals(InstanceCondition(i.Seq).Address()) {
		errs = errors.AppendField(errs, "Address", errors.Wrap(errors.ErrInput, "does not match the sequence"))
	}
	if i.Height < 0 {
		errs = errors.AppendField(errs, "Height", errors.ErrInput)
	}
	return errs
}

// Condition returns the condition that controls the instance.
func (i *Instance) Condition() quorum.Condition {
	return InstanceCondition(i.Seq)
}

// InstanceCondition returns the condition of the instance deployed with
// given sequence value.
func InstanceCondition(seq uint64) quorum.Condition {
	return quorum.NewCondition(ExtensionName, "instance", orm.EncodeSequence(seq))
}

// NewBucket returns the bucket of deployed instances, keyed by their
// address and indexed by the artifact name.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Instance{},
		orm.WithIndex("artifact", artifactIndexer, false),
	)
}

func artifactIndexer(m orm.Model) ([]byte, error) {
	i, ok := m.(*Instance)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(i.Artifact), nil
}

// LoadInstance returns the instance deployed under given address.
func LoadInstance(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Instance, error) {
	var i Instance
	if err := NewBucket().One(db, addr, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// InstancesOf returns all instances of given artifact.
func InstancesOf(db quorum.ReadOnlyKVStore, artifact string) ([]*Instance, error) {
	var res []*Instance
	if _, err := NewBucket().ByIndex(db, "artifact", []byte(artifact), &res); err != nil {
		return nil, err
	}
	return res, nil
}
