package storage

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
)

func init() {
	codec.RegisterMsg(&SetMsg{}, "storage/set")
}

var _ quorum.Msg = (*SetMsg)(nil)

// SetMsg replaces the value held by the contract.
type SetMsg struct {
	Metadata quorum.Metadata
	Contract quorum.Address
	Value    coin.Amount
}

func (SetMsg) Path() string {
	return "storage/set"
}

// Target returns the contract this message is sent to.
func (m *SetMsg) Target() quorum.Address {
	return m.Contract
}

func (m *SetMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	errs = errors.AppendField(errs, "Value", m.Value.Validate())
	return errs
}
