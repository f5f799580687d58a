package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpSequence(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	unknown := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		signer       quorum.Condition
		initSeq      int64
		increment    uint32
		wantCheckErr *errors.Error
		wantSeq      int64
	}{
		"increment by one leaves the sequence untouched": {
			signer:    pub.Condition(),
			initSeq:   5,
			increment: 1,
			wantSeq:   5,
		},
		"increment by many": {
			signer:    pub.Condition(),
			initSeq:   5,
			increment: 100,
			wantSeq:   104,
		},
		"zero increment": {
			signer:       pub.Condition(),
			initSeq:      5,
			increment:    0,
			wantCheckErr: errors.ErrMsg,
			wantSeq:      5,
		},
		"increment too big": {
			signer:       pub.Condition(),
			increment:    maxBumpIncrement + 1,
			wantCheckErr: errors.ErrMsg,
		},
		"overflow": {
			signer:       pub.Condition(),
			initSeq:      maxSequenceValue - 5,
			increment:    10,
			wantCheckErr: errors.ErrOverflow,
			wantSeq:      maxSequenceValue - 5,
		},
		"unknown signer": {
			signer:       unknown.Condition(),
			increment:    1,
			wantCheckErr: errors.ErrNotFound,
		},
		"no signer": {
			increment:    1,
			wantCheckErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			user := &UserData{
				Metadata: quorum.Metadata{Schema: 1},
				Pubkey:   *pub,
				Sequence: tc.initSeq,
			}
			_, err := b.Put(db, pub.Address(), user)
			require.NoError(t, err)

			auth := &weavetest.Auth{}
			if tc.signer != nil {
				auth.Signer = tc.signer
			}
			reg := make(handlerRegistry)
			RegisterRoutes(reg, auth)
			rt := reg[BumpSequenceMsg{}.Path()]
			require.NotNil(t, rt)

			tx := &weavetest.Tx{Msg: &BumpSequenceMsg{
				Metadata:  quorum.Metadata{Schema: 1},
				Increment: tc.increment,
			}}
			ctx := context.Background()
			if _, err := rt.Check(ctx, db, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if tc.wantCheckErr != nil {
				return
			}
			_, err = rt.Deliver(ctx, db, tx)
			require.NoError(t, err)

			var got UserData
			require.NoError(t, b.One(db, pub.Address(), &got))
			assert.Equal(t, tc.wantSeq, got.Sequence)
		})
	}
}
