package artifact

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

func init() {
	codec.RegisterMsg(&DeployContractMsg{}, "artifact/deploy")
}

var _ quorum.Msg = (*DeployContractMsg)(nil)

// DeployContractMsg creates a new instance of an artifact. Args is the
// binary encoding of the artifact constructor arguments, see EncodeArgs.
type DeployContractMsg struct {
	Metadata quorum.Metadata
	Artifact string
	Args     []byte
}

func (DeployContractMsg) Path() string {
	return "artifact/deploy"
}

func (m *DeployContractMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Artifact == "" {
		errs = errors.AppendField(errs, "Artifact", errors.ErrEmpty)
	}
	return errs
}
