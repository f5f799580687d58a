package client

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
)

// Local is a Connection to an in-process application. Every broadcasted
// transaction is checked, then delivered in its own block, which is
// committed right away.
type Local struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
	now     func() time.Time
}

var _ Connection = (*Local)(nil)

// NewLocal wraps given application. If the application has no committed
// state yet, the chain is initialized with given genesis application state
// and an empty first block is committed, so that the genesis state can be
// queried right away.
func NewLocal(app abci.Application, chainID string, appState []byte) (*Local, error) {
	l := &Local{
		app:     app,
		chainID: chainID,
		now:     time.Now,
	}
	info := app.Info(abci.RequestInfo{})
	l.height = info.LastBlockHeight
	if l.height > 0 {
		return l, nil
	}
	if err := l.initChain(appState); err != nil {
		return nil, errors.Wrap(err, "init chain")
	}
	l.commitBlock(nil)
	return l, nil
}

func (l *Local) initChain(appState []byte) (err error) {
	// the application signals a broken genesis by panicking
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.Wrapf(errors.ErrPanic, "%v", r)
			}
		}
	}()
	l.app.InitChain(abci.RequestInitChain{
		Time:          l.now(),
		ChainId:       l.chainID,
		AppStateBytes: appState,
	})
	return nil
}

// Height returns the height of the last committed block.
func (l *Local) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

func (l *Local) ChainID(ctx context.Context) (string, error) {
	return l.chainID, nil
}

func (l *Local) BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrTimeout, err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if chk := l.app.CheckTx(tx); chk.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(chk.Code, chk.Log)
	}

	dres := l.commitBlock(tx)
	res, err := quorum.ParseDeliverOrError(dres)
	if err != nil {
		return nil, err
	}
	return &CommitResult{
		ID:     tmhash.Sum(tx),
		Height: l.height,
		Result: res,
	}, nil
}

// commitBlock runs a block containing the given transaction, or no
// transaction when tx is nil, and commits it.
func (l *Local) commitBlock(tx []byte) abci.ResponseDeliverTx {
	l.height++
	header := abci.Header{
		ChainID: l.chainID,
		Height:  l.height,
		Time:    l.now().UTC(),
	}
	if tx != nil {
		header.NumTxs = 1
	}
	l.app.BeginBlock(abci.RequestBeginBlock{Header: header})
	var dres abci.ResponseDeliverTx
	if tx != nil {
		dres = l.app.DeliverTx(tx)
	}
	l.app.EndBlock(abci.RequestEndBlock{Height: l.height})
	l.app.Commit()
	return dres
}

func (l *Local) AbciQuery(ctx context.Context, path string, data []byte) (abci.ResponseQuery, error) {
	if err := ctx.Err(); err != nil {
		return abci.ResponseQuery{}, errors.Wrap(errors.ErrTimeout, err.Error())
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.app.Query(abci.RequestQuery{Path: path, Data: data}), nil
}
