package sigs

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpSequenceMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *BumpSequenceMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &BumpSequenceMsg{Metadata: quorum.Metadata{Schema: 1}, Increment: 1},
		},
		"missing metadata": {
			msg:     &BumpSequenceMsg{Increment: 1},
			wantErr: errors.ErrMetadata,
		},
		"increment upper bound": {
			msg: &BumpSequenceMsg{Metadata: quorum.Metadata{Schema: 1}, Increment: maxBumpIncrement},
		},
		"increment over upper bound": {
			msg:     &BumpSequenceMsg{Metadata: quorum.Metadata{Schema: 1}, Increment: maxBumpIncrement + 1},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestBumpSequenceMsgEncoding(t *testing.T) {
	msg := &BumpSequenceMsg{Metadata: quorum.Metadata{Schema: 1}, Increment: 7}
	bz, err := codec.MarshalMsg(msg)
	require.NoError(t, err)
	got, err := codec.UnmarshalMsg(bz)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}
