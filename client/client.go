package client

import (
	"context"
	"sort"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/migration"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/artifact"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/storage"
)

// Tx is a transaction that can be signed by the client.
type Tx interface {
	sigs.SignedTx
	// AddSignature appends a signature to the transaction.
	AddSignature(sig *sigs.StdSignature)
	// Marshal returns the wire representation of the transaction.
	Marshal() ([]byte, error)
}

// Client wraps a Connection to provide simple access to the basic data
// structures of every extension.
type Client struct {
	conn Connection
}

// NewClient wraps a Client around an existing connection.
func NewClient(conn Connection) *Client {
	return &Client{conn: conn}
}

// ChainID returns the id of the connected chain.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	return c.conn.ChainID(ctx)
}

// Query runs an abci query and returns all matching models. Keys are the
// absolute database keys.
func (c *Client) Query(ctx context.Context, path string, data []byte) ([]quorum.Model, error) {
	res, err := c.conn.AbciQuery(ctx, path, data)
	if err != nil {
		return nil, err
	}
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single model stored under given key into dest. It
// returns ErrNotFound if there is no such model.
func (c *Client) queryOne(ctx context.Context, path string, key []byte, dest orm.Model) error {
	res, err := c.conn.AbciQuery(ctx, path, key)
	if err != nil {
		return err
	}
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	if err := app.UnmarshalOneResult(res.Value, dest); err != nil {
		return errors.Wrapf(err, "%s %X", path, key)
	}
	return nil
}

// Sequence returns the sequence the next signature of given address must
// use. Unknown signers start at zero.
func (c *Client) Sequence(ctx context.Context, addr quorum.Address) (int64, error) {
	var u sigs.UserData
	switch err := c.queryOne(ctx, "/auth", addr, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Balance returns the cash balance of given address.
func (c *Client) Balance(ctx context.Context, addr quorum.Address) (coin.Amount, error) {
	var w cash.Wallet
	switch err := c.queryOne(ctx, "/wallets", addr, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewAmount(0), nil
	default:
		return nil, err
	}
}

// Instance returns the deployed contract instance with given address.
func (c *Client) Instance(ctx context.Context, addr quorum.Address) (*artifact.Instance, error) {
	var i artifact.Instance
	if err := c.queryOne(ctx, "/instances", addr, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// InstancesOf returns all deployed instances of given artifact, ordered by
// their deployment sequence.
func (c *Client) InstancesOf(ctx context.Context, artifactName string) ([]*artifact.Instance, error) {
	models, err := c.Query(ctx, "/instances/artifact", []byte(artifactName))
	if err != nil {
		return nil, err
	}
	res := make([]*artifact.Instance, len(models))
	for i, m := range models {
		var inst artifact.Instance
		if err := codec.Unmarshal(m.Value, &inst); err != nil {
			return nil, err
		}
		res[i] = &inst
	}
	sort.Slice(res, func(a, b int) bool { return res[a].Seq < res[b].Seq })
	return res, nil
}

// Wallet returns the state of the MultiSignatureWallet instance.
func (c *Client) Wallet(ctx context.Context, addr quorum.Address) (*multisig.Wallet, error) {
	var w multisig.Wallet
	if err := c.queryOne(ctx, "/multisig", addr, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Transaction returns the wallet transaction with given id.
func (c *Client) Transaction(ctx context.Context, wallet quorum.Address, id uint64) (*multisig.Transaction, error) {
	key := append(append([]byte{}, wallet...), orm.EncodeSequence(id)...)
	var t multisig.Transaction
	if err := c.queryOne(ctx, "/multisig_txs", key, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// StoredValue returns the value held by the SimpleStorage instance.
func (c *Client) StoredValue(ctx context.Context, addr quorum.Address) (coin.Amount, error) {
	var s storage.Storage
	if err := c.queryOne(ctx, "/storage", addr, &s); err != nil {
		return nil, err
	}
	return s.Value, nil
}

// LastCompletedMigration returns the progress recorded by the Migrations
// instance.
func (c *Client) LastCompletedMigration(ctx context.Context, addr quorum.Address) (uint64, error) {
	var m migration.Migrations
	if err := c.queryOne(ctx, "/migrations", addr, &m); err != nil {
		return 0, err
	}
	return m.LastCompletedMigration, nil
}

// SignAndBroadcast signs the transaction with all given signers, using
// their current sequences, and waits until it is committed.
func (c *Client) SignAndBroadcast(ctx context.Context, tx Tx, signers ...crypto.Signer) (*CommitResult, error) {
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chain id")
	}
	for _, s := range signers {
		seq, err := c.Sequence(ctx, s.PublicKey().Address())
		if err != nil {
			return nil, errors.Wrap(err, "sequence")
		}
		sig, err := sigs.SignTx(s, tx, chainID, seq)
		if err != nil {
			return nil, errors.Wrap(err, "sign")
		}
		tx.AddSignature(sig)
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	return c.conn.BroadcastTxCommit(ctx, raw)
}
