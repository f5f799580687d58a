package artifact

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestDeployContractMsg(t *testing.T) {
	msg := &DeployContractMsg{
		Metadata: quorum.Metadata{Schema: 1},
		Artifact: "Counter",
		Args:     []byte{1, 2, 3},
	}
	assert.Nil(t, msg.Validate())

	bz, err := codec.MarshalMsg(msg)
	assert.Nil(t, err)
	got, err := codec.UnmarshalMsg(bz)
	assert.Nil(t, err)
	assert.Equal(t, quorum.Msg(msg), got)

	err = (&DeployContractMsg{}).Validate()
	assert.FieldError(t, err, "Metadata", errors.ErrMetadata)
	assert.FieldError(t, err, "Artifact", errors.ErrEmpty)
}
