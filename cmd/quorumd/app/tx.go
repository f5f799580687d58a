package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
)

// Tx is the transaction type of the quorum chain. It carries a single codec
// encoded message, the signatures and the wallets the signers act through.
type Tx struct {
	Msg        []byte
	Signatures []*sigs.StdSignature
	// Multisig lists the MultiSignatureWallet instances whose authority
	// is claimed. Inner wallets must be listed before outer ones.
	Multisig []quorum.Address
}

// make sure tx fulfills all interfaces
var _ quorum.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)
var _ multisig.MultiSigTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg quorum.Msg, wallets ...quorum.Address) (*Tx, error) {
	raw, err := codec.MarshalMsg(msg)
	if err != nil {
		return nil, errors.Wrap(err, "message")
	}
	return &Tx{Msg: raw, Multisig: wallets}, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (quorum.Tx, error) {
	if len(bz) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction")
	}
	tx := new(Tx)
	if err := codec.Unmarshal(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) GetMsg() (quorum.Msg, error) {
	return codec.UnmarshalMsg(tx.Msg)
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg, Multisig: tx.Multisig}
	return codec.Marshal(&unsigned)
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

func (tx *Tx) GetMultisig() []quorum.Address {
	return tx.Multisig
}

// AddSignature appends a signature to the transaction.
func (tx *Tx) AddSignature(sig *sigs.StdSignature) {
	tx.Signatures = append(tx.Signatures, sig)
}

// Marshal returns the wire representation of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}
