package multisig

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/artifact"
	"github.com/iov-one/quorum/x/cash"
)

// Events are reported as deliver result tags. The tag value is the
// transaction reference: <wallet>/<transaction id>.
const (
	EventSubmission       = "submission"
	EventConfirmation     = "confirmation"
	EventRevocation       = "revocation"
	EventExecution        = "execution"
	EventExecutionFailure = "execution_failure"
)

const (
	submitCost  int64 = 20
	confirmCost int64 = 10
)

// RegisterRoutes registers the wallet handlers. Messages carried by
// executed transactions are delivered with executor, usually the
// application router.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, control cash.Controller, executor quorum.Deliverer) {
	h := walletHandler{
		auth:     auth,
		control:  control,
		executor: executor,
		wallets:  NewWalletBucket(),
		txs:      NewTransactionBucket(),
	}
	r.Handle(SubmitTransactionMsg{}.Path(), submitHandler{h})
	r.Handle(ConfirmTransactionMsg{}.Path(), confirmHandler{h})
	r.Handle(RevokeConfirmationMsg{}.Path(), revokeHandler{h})
	r.Handle(ExecuteTransactionMsg{}.Path(), executeHandler{h})
	r.Handle(UpdateConfigurationMsg{}.Path(), NewConfigHandler(auth))
}

// RegisterQuery registers wallets under "/multisig" and their transactions
// under "/multisig_txs"
func RegisterQuery(qr quorum.QueryRouter) {
	NewWalletBucket().Register("multisig", qr)
	NewTransactionBucket().Register("multisig_txs", qr)
}

// walletHandler holds the functionality shared by all wallet handlers.
type walletHandler struct {
	auth     x.Authenticator
	control  cash.Controller
	executor quorum.Deliverer
	wallets  orm.ModelBucket
	txs      orm.ModelBucket
}

func (h walletHandler) saveTransaction(db quorum.KVStore, t *Transaction) error {
	if _, err := h.txs.Put(db, transactionKey(t.Wallet, t.ID), t); err != nil {
		return errors.Wrap(err, "save transaction")
	}
	return nil
}

// signingOwners returns all wallet owners authenticated in the context. At
// least one owner must be present.
func (h walletHandler) signingOwners(ctx quorum.Context, w *Wallet) ([]quorum.Address, error) {
	var res []quorum.Address
	for _, o := range w.Owners {
		if h.auth.HasAddress(ctx, o) {
			res = append(res, o)
		}
	}
	if len(res) == 0 {
		return nil, errors.Wrap(ErrNotOwner, "no owner signature")
	}
	return res, nil
}

// loadPending loads the wallet and the transaction and ensures that the
// transaction was not executed and that it was signed by an owner.
func (h walletHandler) loadPending(ctx quorum.Context, db quorum.ReadOnlyKVStore, wallet quorum.Address, id uint64) (*Wallet, *Transaction, []quorum.Address, error) {
	w, err := LoadWallet(db, wallet)
	if err != nil {
		return nil, nil, nil, err
	}
	owners, err := h.signingOwners(ctx, w)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := LoadTransaction(db, wallet, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if t.Executed {
		return nil, nil, nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	return w, t, owners, nil
}

// tryExecute executes the transaction if it has enough confirmations.
//
// Execution runs in an isolated cache. A failure discards all changes made
// by the execution, reports it in the result and does not fail the outer
// transaction.
func (h walletHandler) tryExecute(ctx quorum.Context, db quorum.KVStore, w *Wallet, t *Transaction, res *quorum.DeliverResult) error {
	if t.Executed || !isConfirmed(w, t) {
		return nil
	}
	cstore, ok := db.(quorum.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "cannot execute on %T store", db)
	}
	cache := cstore.CacheWrap()

	ref := txRef(t)
	if err := h.execute(ctx, cache, t); err != nil {
		cache.Discard()
		t.Executed = false
		executionsCounter.WithLabelValues("failure").Inc()
		quorum.GetLogger(ctx).Info("wallet transaction execution failed",
			"transaction", ref,
			"err", err)
		res.AddTag(EventExecutionFailure, ref)
		return nil
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write execution")
	}
	executionsCounter.WithLabelValues("success").Inc()
	res.AddTag(EventExecution, ref)
	return nil
}

// execute marks the transaction executed first, so that the delivered
// message cannot execute it again.
func (h walletHandler) execute(ctx quorum.Context, db quorum.KVStore, t *Transaction) error {
	t.Executed = true
	if err := h.saveTransaction(db, t); err != nil {
		return err
	}

	if t.Value.IsPositive() {
		if err := h.control.MoveCoins(db, t.Wallet, t.Destination, t.Value); err != nil {
			return errors.Wrap(err, "transfer value")
		}
	}
	if len(t.Data) == 0 {
		return nil
	}

	msg, err := codec.UnmarshalMsg(t.Data)
	if err != nil {
		return errors.Wrap(err, "decode message")
	}
	if tm, ok := msg.(targeted); ok && !tm.Target().Equals(t.Destination) {
		return errors.Wrapf(errors.ErrInput, "message targets %s, not the destination %s", tm.Target(), t.Destination)
	}
	if h.executor == nil {
		return errors.Wrap(errors.ErrHuman, "no message executor")
	}
	inst, err := artifact.LoadInstance(db, t.Wallet)
	if err != nil {
		return errors.Wrap(err, "wallet instance")
	}
	ctx = withWallet(ctx, inst.Condition())
	if _, err := h.executor.Deliver(ctx, db, &executionTx{msg: msg}); err != nil {
		return errors.Wrap(err, "deliver message")
	}
	return nil
}

// targeted is implemented by messages sent to a single contract.
type targeted interface {
	Target() quorum.Address
}

// executionTx carries a message delivered on behalf of a wallet.
type executionTx struct {
	msg quorum.Msg
}

var _ quorum.Tx = (*executionTx)(nil)

func (tx *executionTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}

func txRef(t *Transaction) string {
	return fmt.Sprintf("%s/%d", t.Wallet, t.ID)
}

type submitHandler struct {
	walletHandler
}

var _ quorum.Handler = submitHandler{}

func (h submitHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: submitCost}, nil
}

func (h submitHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, w, owners, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		Metadata:      quorum.Metadata{Schema: 1},
		Wallet:        msg.Wallet,
		ID:            w.TransactionCount,
		Destination:   msg.Destination,
		Value:         msg.Value,
		Data:          msg.Data,
		Confirmations: owners,
	}
	w.TransactionCount++
	if _, err := h.wallets.Put(db, msg.Wallet, w); err != nil {
		return nil, errors.Wrap(err, "save wallet")
	}
	if err := h.saveTransaction(db, t); err != nil {
		return nil, err
	}

	res := &quorum.DeliverResult{Data: orm.EncodeSequence(t.ID)}
	res.AddTag(EventSubmission, txRef(t))
	res.AddTag(EventConfirmation, txRef(t))
	if err := h.tryExecute(ctx, db, w, t, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (h submitHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*SubmitTransactionMsg, *Wallet, []quorum.Address, error) {
	var msg SubmitTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWallet(db, msg.Wallet)
	if err != nil {
		return nil, nil, nil, err
	}
	owners, err := h.signingOwners(ctx, w)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, w, owners, nil
}

type confirmHandler struct {
	walletHandler
}

var _ quorum.Handler = confirmHandler{}

func (h confirmHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: confirmCost}, nil
}

func (h confirmHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	w, t, owners, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t.Confirmations = append(t.Confirmations, owners...)
	if err := h.saveTransaction(db, t); err != nil {
		return nil, err
	}

	res := &quorum.DeliverResult{}
	res.AddTag(EventConfirmation, txRef(t))
	if err := h.tryExecute(ctx, db, w, t, res); err != nil {
		return nil, err
	}
	return res, nil
}

// validate returns the signing owners that did not confirm yet.
func (h confirmHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Wallet, *Transaction, []quorum.Address, error) {
	var msg ConfirmTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	w, t, owners, err := h.loadPending(ctx, db, msg.Wallet, msg.TransactionID)
	if err != nil {
		return nil, nil, nil, err
	}
	var missing []quorum.Address
	for _, o := range owners {
		if !t.IsConfirmedBy(o) {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return nil, nil, nil, errors.Wrapf(ErrAlreadyConfirmed, "transaction %d", t.ID)
	}
	return w, t, missing, nil
}

type revokeHandler struct {
	walletHandler
}

var _ quorum.Handler = revokeHandler{}

func (h revokeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: confirmCost}, nil
}

func (h revokeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	t, owners, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	kept := make([]quorum.Address, 0, len(t.Confirmations))
	for _, c := range t.Confirmations {
		if !containsAddr(owners, c) {
			kept = append(kept, c)
		}
	}
	t.Confirmations = kept
	if err := h.saveTransaction(db, t); err != nil {
		return nil, err
	}
	res := &quorum.DeliverResult{}
	res.AddTag(EventRevocation, txRef(t))
	return res, nil
}

// validate returns the signing owners that confirmed the transaction.
func (h revokeHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Transaction, []quorum.Address, error) {
	var msg RevokeConfirmationMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	_, t, owners, err := h.loadPending(ctx, db, msg.Wallet, msg.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	var confirmed []quorum.Address
	for _, o := range owners {
		if t.IsConfirmedBy(o) {
			confirmed = append(confirmed, o)
		}
	}
	if len(confirmed) == 0 {
		return nil, nil, errors.Wrapf(ErrNotConfirmed, "transaction %d", t.ID)
	}
	return t, confirmed, nil
}

type executeHandler struct {
	walletHandler
}

var _ quorum.Handler = executeHandler{}

func (h executeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: confirmCost}, nil
}

// Deliver executes the transaction if it is confirmed. A transaction
// without enough confirmations is left untouched.
func (h executeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	w, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res := &quorum.DeliverResult{}
	if err := h.tryExecute(ctx, db, w, t, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (h executeHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Wallet, *Transaction, error) {
	var msg ExecuteTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, t, _, err := h.loadPending(ctx, db, msg.Wallet, msg.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	return w, t, nil
}

func containsAddr(addrs []quorum.Address, a quorum.Address) bool {
	for _, have := range addrs {
		if have.Equals(a) {
			return true
		}
	}
	return false
}
