package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

func init() {
	codec.RegisterMsg(&BumpSequenceMsg{}, "sigs/bump_sequence")
}

const maxBumpIncrement = 1000

var _ quorum.Msg = (*BumpSequenceMsg)(nil)

// BumpSequenceMsg increments the sequence of the main signer by the given
// value. Processing any signed transaction increments the sequence by one,
// which is included in the total.
type BumpSequenceMsg struct {
	Metadata  quorum.Metadata
	Increment uint32
}

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (m *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Increment < 1 {
		errs = errors.AppendField(errs, "Increment", errors.Wrap(errors.ErrMsg, "increment must be greater than zero"))
	}
	if m.Increment > maxBumpIncrement {
		errs = errors.AppendField(errs, "Increment", errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxBumpIncrement))
	}
	return errs
}
