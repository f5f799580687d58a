/*
Package codec provides the binary and JSON encoding shared by models,
messages and transactions.

All encoding is done with go-amino. Every concrete type that travels inside
an interface field (most notably quorum.Msg) must be registered with a unique
name before it is encoded or decoded. Extensions register their messages from
an init function:

	func init() {
		codec.RegisterMsg(&SetMsg{}, "storage/set")
	}
*/
package codec

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*quorum.Msg)(nil), nil)
}

// RegisterMsg registers a message implementation under given name. Register
// a pointer to have the message decoded as a pointer.
func RegisterMsg(msg quorum.Msg, name string) {
	cdc.RegisterConcrete(msg, name, nil)
}

// RegisterConcrete registers any type that is encoded inside an interface.
func RegisterConcrete(o interface{}, name string) {
	cdc.RegisterConcrete(o, name, nil)
}

// Amino returns the underlying codec. Use it only to register types of
// external packages.
func Amino() *amino.Codec {
	return cdc
}

// Marshal returns the binary representation of given object.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSchema, "marshal %T: %s", o, err)
	}
	return bz, nil
}

// MustMarshal is like Marshal but panics on failure. Use it only with
// objects that are known to be serializable.
func MustMarshal(o interface{}) []byte {
	bz, err := Marshal(o)
	if err != nil {
		panic(err)
	}
	return bz
}

// Unmarshal decodes binary representation into given pointer.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrSchema, "unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MarshalMsg returns the binary representation of a message, including its
// type prefix so that it can be decoded without knowing its type.
func MarshalMsg(msg quorum.Msg) ([]byte, error) {
	if msg == nil {
		return nil, errors.ErrMsg.New("nil message")
	}
	return Marshal(&msg)
}

// UnmarshalMsg decodes a message encoded with MarshalMsg.
func UnmarshalMsg(bz []byte) (quorum.Msg, error) {
	if len(bz) == 0 {
		return nil, errors.ErrEmpty.New("message")
	}
	var msg quorum.Msg
	if err := Unmarshal(bz, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return msg, nil
}

// MarshalJSON returns the JSON representation used for human consumption.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalJSONIndent(o, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSchema, "marshal json %T: %s", o, err)
	}
	return bz, nil
}

// UnmarshalJSON decodes a JSON representation created by MarshalJSON.
func UnmarshalJSON(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalJSON(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrSchema, "unmarshal json %T: %s", ptr, err)
	}
	return nil
}
