package client

import (
	"context"

	"github.com/iov-one/quorum"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// Connection is the minimal interface to a chain.
type Connection interface {
	// ChainID returns the id of the chain this connection talks to.
	ChainID(ctx context.Context) (string, error)

	// BroadcastTxCommit submits the serialized transaction and blocks
	// until it is included in a block. An error is returned if the
	// transaction failed either the check or the delivery.
	BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error)

	// AbciQuery mirrors the abci query interface.
	AbciQuery(ctx context.Context, path string, data []byte) (abci.ResponseQuery, error)
}

// CommitResult is returned from the block (DeliverTx)
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *quorum.DeliverResult
}

// Tag returns the value of the first tag with given key, or an empty string.
func (c *CommitResult) Tag(key string) string {
	if c == nil || c.Result == nil {
		return ""
	}
	for _, t := range c.Result.Tags {
		if string(t.Key) == key {
			return string(t.Value)
		}
	}
	return ""
}
