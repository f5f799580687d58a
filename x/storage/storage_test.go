package storage

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/artifact"
)

func TestSimpleStorage(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	creator := weavetest.NewCondition().Address()

	inst, err := artifact.Deploy(ctx, db, Artifact{}, creator, &artifact.NoArgs{})
	assert.Nil(t, err)

	v, err := Get(db, inst.Address)
	assert.Nil(t, err)
	assert.Equal(t, true, v.IsZero())

	reg := make(handlerRegistry)
	RegisterRoutes(reg)
	h := reg[SetMsg{}.Path()]

	cases := map[string]struct {
		msg     *SetMsg
		wantErr *errors.Error
		want    string
	}{
		"set value": {
			msg: &SetMsg{
				Metadata: quorum.Metadata{Schema: 1},
				Contract: inst.Address,
				Value:    coin.NewAmount(42),
			},
			want: "42",
		},
		"set back to zero": {
			msg: &SetMsg{
				Metadata: quorum.Metadata{Schema: 1},
				Contract: inst.Address,
			},
			want: "0",
		},
		"unknown contract": {
			msg: &SetMsg{
				Metadata: quorum.Metadata{Schema: 1},
				Contract: weavetest.NewCondition().Address(),
				Value:    coin.NewAmount(1),
			},
			wantErr: errors.ErrNotFound,
			want:    "0",
		},
		"missing contract": {
			msg: &SetMsg{
				Metadata: quorum.Metadata{Schema: 1},
			},
			wantErr: errors.ErrEmpty,
			want:    "0",
		},
	}

	// cases run in order, each builds on the previous state
	for _, name := range []string{"set value", "set back to zero", "unknown contract", "missing contract"} {
		tc := cases[name]
		t.Run(name, func(t *testing.T) {
			tx := &weavetest.Tx{Msg: tc.msg}
			if _, err := h.Check(ctx, db.CacheWrap(), tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			v, err := Get(db, inst.Address)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, v.String())
		})
	}

	qr := quorum.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/storage").Query(db, quorum.KeyQueryMod, inst.Address)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
}

func TestTarget(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	msg := &SetMsg{Contract: addr}
	assert.Equal(t, addr, msg.Target())
}

type handlerRegistry map[string]quorum.Handler

func (r handlerRegistry) Handle(path string, h quorum.Handler) {
	r[path] = h
}
