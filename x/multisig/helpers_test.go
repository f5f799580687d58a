package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/artifact"
	"github.com/iov-one/quorum/x/cash"
)

// handlerRegistry routes messages by their path. It serves both as the
// registry and as the executor of wallet transactions.
type handlerRegistry map[string]quorum.Handler

func (r handlerRegistry) Handle(path string, h quorum.Handler) {
	r[path] = h
}

func (r handlerRegistry) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	h, ok := r[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %s", msg.Path())
	}
	return h.Deliver(ctx, db, tx)
}

// recorder is a handler that remembers the wallets authenticated when it
// was called.
type recorder struct {
	calls   int
	wallets []quorum.Condition
	err     error
}

func (r *recorder) Check(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.CheckResult, error) {
	return &quorum.CheckResult{}, nil
}

func (r *recorder) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	r.calls++
	r.wallets = Authenticate{}.GetConditions(ctx)
	if r.err != nil {
		return nil, r.err
	}
	return &quorum.DeliverResult{}, nil
}

// env is a store with a single deployed wallet.
type env struct {
	db      store.CacheableKVStore
	auth    *weavetest.CtxAuth
	control cash.BaseController
	routes  handlerRegistry
	owners  []quorum.Condition
	wallet  *artifact.Instance
}

func newEnv(t testing.TB, required uint32, owners int) *env {
	t.Helper()

	e := &env{
		db:      store.MemStore(),
		auth:    &weavetest.CtxAuth{Key: "auth"},
		control: cash.NewController(),
		routes:  make(handlerRegistry),
	}
	addrs := make([]quorum.Address, owners)
	for i := range addrs {
		c := weavetest.NewCondition()
		e.owners = append(e.owners, c)
		addrs[i] = c.Address()
	}
	inst, err := artifact.Deploy(context.Background(), e.db, Artifact{}, addrs[0],
		&ConstructorArgs{Owners: addrs, Required: required})
	assert.Nil(t, err)
	e.wallet = inst

	RegisterRoutes(e.routes, x.ChainAuth(e.auth, Authenticate{}), e.control, e.routes)
	return e
}

func (e *env) fund(t testing.TB, amount uint64) {
	t.Helper()
	assert.Nil(t, e.control.CoinMint(e.db, e.wallet.Address, coin.NewAmount(amount)))
}

// deliver runs the message through check and deliver, signed by given
// conditions.
func (e *env) deliver(t testing.TB, msg quorum.Msg, signers ...quorum.Condition) (*quorum.DeliverResult, error) {
	t.Helper()
	ctx := e.auth.SetConditions(context.Background(), signers...)
	tx := &weavetest.Tx{Msg: msg}
	h, ok := e.routes[msg.Path()]
	if !ok {
		t.Fatalf("no handler for %s", msg.Path())
	}

	cache := e.db.CacheWrap()
	_, checkErr := h.Check(ctx, cache, tx)
	cache.Discard()

	res, err := h.Deliver(ctx, e.db, tx)
	if (checkErr == nil) != (err == nil) {
		t.Fatalf("check and deliver disagree: %v, %v", checkErr, err)
	}
	return res, err
}

func (e *env) submit(dest quorum.Address, value uint64, data []byte) *SubmitTransactionMsg {
	msg := &SubmitTransactionMsg{
		Metadata:    quorum.Metadata{Schema: 1},
		Wallet:      e.wallet.Address,
		Destination: dest,
		Data:        data,
	}
	if value > 0 {
		msg.Value = coin.NewAmount(value)
	}
	return msg
}

func (e *env) confirm(id uint64) *ConfirmTransactionMsg {
	return &ConfirmTransactionMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: e.wallet.Address, TransactionID: id}
}

func (e *env) revoke(id uint64) *RevokeConfirmationMsg {
	return &RevokeConfirmationMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: e.wallet.Address, TransactionID: id}
}

func (e *env) execute(id uint64) *ExecuteTransactionMsg {
	return &ExecuteTransactionMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: e.wallet.Address, TransactionID: id}
}

func tagKeys(res *quorum.DeliverResult) []string {
	keys := make([]string, len(res.Tags))
	for i, t := range res.Tags {
		keys[i] = string(t.Key)
	}
	return keys
}
