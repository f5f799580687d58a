package migration

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

func init() {
	codec.RegisterMsg(&SetCompletedMsg{}, "migration/set_completed")
}

var _ quorum.Msg = (*SetCompletedMsg)(nil)

// SetCompletedMsg records the number of the last completed migration.
type SetCompletedMsg struct {
	Metadata  quorum.Metadata
	Contract  quorum.Address
	Completed uint64
}

func (SetCompletedMsg) Path() string {
	return "migration/set_completed"
}

// Target returns the contract this message is sent to.
func (m *SetCompletedMsg) Target() quorum.Address {
	return m.Contract
}

func (m *SetCompletedMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	return errs
}
