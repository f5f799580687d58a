package codec

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteMsg struct {
	Owner quorum.Address
	Text  string
	Count uint32
}

func (noteMsg) Path() string { return "codec/note" }
func (*noteMsg) Validate() error { return nil }

func init() {
	RegisterMsg(&noteMsg{}, "codec/note")
}

func TestMsgEncoding(t *testing.T) {
	msg := &noteMsg{
		Owner: quorum.NewAddress([]byte("owner")),
		Text:  "hello",
		Count: 3,
	}
	bz, err := MarshalMsg(msg)
	require.NoError(t, err)

	got, err := UnmarshalMsg(bz)
	require.NoError(t, err)
	note, ok := got.(*noteMsg)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, msg, note)
}

func TestUnmarshalMsgErrors(t *testing.T) {
	_, err := UnmarshalMsg(nil)
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = UnmarshalMsg([]byte{0xde, 0xad, 0xbe, 0xef, 0x01})
	assert.True(t, errors.ErrMsg.Is(err))

	_, err = MarshalMsg(nil)
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestModelEncoding(t *testing.T) {
	type model struct {
		Owners   []quorum.Address
		Required uint32
	}
	m := model{
		Owners:   []quorum.Address{quorum.NewAddress([]byte("a")), quorum.NewAddress([]byte("b"))},
		Required: 2,
	}
	bz := MustMarshal(m)

	var got model
	require.NoError(t, Unmarshal(bz, &got))
	assert.Equal(t, m, got)

	js, err := MarshalJSON(m)
	require.NoError(t, err)
	var fromJSON model
	require.NoError(t, UnmarshalJSON(js, &fromJSON))
	assert.Equal(t, m, fromJSON)
}
