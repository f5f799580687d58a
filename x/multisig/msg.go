package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
)

func init() {
	codec.RegisterMsg(&SubmitTransactionMsg{}, "multisig/submit")
	codec.RegisterMsg(&ConfirmTransactionMsg{}, "multisig/confirm")
	codec.RegisterMsg(&RevokeConfirmationMsg{}, "multisig/revoke")
	codec.RegisterMsg(&ExecuteTransactionMsg{}, "multisig/execute")
}

var _ quorum.Msg = (*SubmitTransactionMsg)(nil)
var _ quorum.Msg = (*ConfirmTransactionMsg)(nil)
var _ quorum.Msg = (*RevokeConfirmationMsg)(nil)
var _ quorum.Msg = (*ExecuteTransactionMsg)(nil)

// SubmitTransactionMsg proposes a new wallet transaction. Data, if present,
// must be a codec encoded message, see codec.MarshalMsg.
type SubmitTransactionMsg struct {
	Metadata    quorum.Metadata
	Wallet      quorum.Address
	Destination quorum.Address
	Value       coin.Amount
	Data        []byte
}

func (SubmitTransactionMsg) Path() string {
	return "multisig/submit"
}

func (m *SubmitTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Value", m.Value.Validate())
	if len(m.Data) != 0 {
		if _, err := codec.UnmarshalMsg(m.Data); err != nil {
			errs = errors.AppendField(errs, "Data", err)
		}
	}
	return errs
}

// ConfirmTransactionMsg adds the confirmation of the signing owner.
type ConfirmTransactionMsg struct {
	Metadata      quorum.Metadata
	Wallet        quorum.Address
	TransactionID uint64
}

func (ConfirmTransactionMsg) Path() string {
	return "multisig/confirm"
}

func (m *ConfirmTransactionMsg) Validate() error {
	return validateTxRef(m.Metadata, m.Wallet)
}

// RevokeConfirmationMsg withdraws the confirmation of the signing owner.
type RevokeConfirmationMsg struct {
	Metadata      quorum.Metadata
	Wallet        quorum.Address
	TransactionID uint64
}

func (RevokeConfirmationMsg) Path() string {
	return "multisig/revoke"
}

func (m *RevokeConfirmationMsg) Validate() error {
	return validateTxRef(m.Metadata, m.Wallet)
}

// ExecuteTransactionMsg executes a confirmed transaction. It is useful to
// retry an execution that failed before.
type ExecuteTransactionMsg struct {
	Metadata      quorum.Metadata
	Wallet        quorum.Address
	TransactionID uint64
}

func (ExecuteTransactionMsg) Path() string {
	return "multisig/execute"
}

func (m *ExecuteTransactionMsg) Validate() error {
	return validateTxRef(m.Metadata, m.Wallet)
}

func validateTxRef(meta quorum.Metadata, wallet quorum.Address) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	errs = errors.AppendField(errs, "Wallet", wallet.Validate())
	return errs
}
