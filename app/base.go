package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs deployment and contract transactions on top of the state kept
// by StoreApp. Raw bytes are decoded with decoder and routed to handler.
type BaseApp struct {
	*StoreApp
	decoder quorum.TxDecoder
	handler quorum.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp binds a decoder and a handler to store. With debug set, error
// responses carry full stack traces.
func NewBaseApp(
	store *StoreApp,
	decoder quorum.TxDecoder,
	handler quorum.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes tx against the deliver cache of the current block.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		countTx("deliver", 1)
		return quorum.DeliverTxError(err, b.debug)
	}

	ctx := quorum.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", quorum.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	resp := quorum.DeliverOrError(res, err, b.debug)
	countTx("deliver", resp.Code)
	return resp
}

// CheckTx validates tx against the check cache. Nothing it writes is
// committed.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		countTx("check", 1)
		return quorum.CheckTxError(err, b.debug)
	}

	ctx := quorum.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", quorum.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	resp := quorum.CheckOrError(res, err, b.debug)
	countTx("check", resp.Code)
	return resp
}

// loadTx decodes txBytes. A panicking decoder yields ErrPanic.
func (b BaseApp) loadTx(txBytes []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
