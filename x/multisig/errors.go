package multisig

import "github.com/iov-one/quorum/errors"

var (
	// ErrNotOwner is returned when the signer does not own the wallet.
	ErrNotOwner = errors.Register(140, "not a wallet owner")
	// ErrAlreadyConfirmed is returned when an owner confirms twice.
	ErrAlreadyConfirmed = errors.Register(141, "already confirmed")
	// ErrNotConfirmed is returned when revoking a missing confirmation.
	ErrNotConfirmed = errors.Register(142, "not confirmed")
	// ErrAlreadyExecuted is returned for any change of an executed
	// transaction.
	ErrAlreadyExecuted = errors.Register(143, "already executed")
	// ErrInvalidRequirement is returned when the owners and the required
	// confirmations do not form a valid wallet.
	ErrInvalidRequirement = errors.Register(144, "invalid requirement")
	// ErrUnauthorizedMultiSig is returned when a transaction lists a
	// wallet without enough owner signatures.
	ErrUnauthorizedMultiSig = errors.Register(145, "multisig authentication failed")
)
