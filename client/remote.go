package client

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Remote is a Connection to a tendermint node over http.
type Remote struct {
	conn rpcclient.Client
}

var _ Connection = (*Remote)(nil)

// NewRemote takes a URL and sends all requests to the remote node
func NewRemote(remote string) *Remote {
	return &Remote{conn: rpcclient.NewHTTP(remote, "/websocket")}
}

func (r *Remote) ChainID(ctx context.Context) (string, error) {
	status, err := r.conn.Status()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return status.NodeInfo.Network, nil
}

func (r *Remote) BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrTimeout, err.Error())
	}
	res, err := r.conn.BroadcastTxCommit(tmtypes.Tx(tx))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	// a checktx error is handled like any other error, it will not make it
	// into a block
	if res.CheckTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	dres, err := quorum.ParseDeliverOrError(res.DeliverTx)
	if err != nil {
		return nil, err
	}
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: dres,
	}, nil
}

func (r *Remote) AbciQuery(ctx context.Context, path string, data []byte) (abci.ResponseQuery, error) {
	if err := ctx.Err(); err != nil {
		return abci.ResponseQuery{}, errors.Wrap(errors.ErrTimeout, err.Error())
	}
	res, err := r.conn.ABCIQuery(path, data)
	if err != nil {
		return abci.ResponseQuery{}, errors.Wrapf(errors.ErrNetwork, "query: %s", err)
	}
	return res.Response, nil
}
