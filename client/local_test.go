package client_test

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/client"
	quorumd "github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const localBalance = 5000

func newLocal(t *testing.T) (*client.Local, []*crypto.PrivateKey) {
	t.Helper()
	keys, err := crypto.DeriveKeys("local chain test", 3)
	require.NoError(t, err)
	addrs := make([]quorum.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k.PublicKey().Address()
	}
	genesis, err := quorumd.GenesisOptions(addrs, coin.NewAmount(localBalance))
	require.NoError(t, err)
	local, err := client.NewLocal(quorumd.InlineApp(log.NewNopLogger(), false), "local-chain", genesis)
	require.NoError(t, err)
	return local, keys
}

func TestLocalGenesisIsQueryable(t *testing.T) {
	local, keys := newLocal(t)
	c := client.NewClient(local)
	ctx := context.Background()

	// the genesis block is committed by NewLocal
	assert.Equal(t, int64(1), local.Height())

	cases := map[string]struct {
		addr        quorum.Address
		wantBalance coin.Amount
	}{
		"funded account": {
			addr:        keys[0].PublicKey().Address(),
			wantBalance: coin.NewAmount(localBalance),
		},
		"last funded account": {
			addr:        keys[2].PublicKey().Address(),
			wantBalance: coin.NewAmount(localBalance),
		},
		"unknown account": {
			addr:        quorum.NewCondition("test", "unknown", []byte{1}).Address(),
			wantBalance: coin.NewAmount(0),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			balance, err := c.Balance(ctx, tc.addr)
			require.NoError(t, err)
			assert.True(t, tc.wantBalance.Equals(balance), "want %s, got %s", tc.wantBalance, balance)
		})
	}

	_, err := c.Wallet(ctx, keys[0].PublicKey().Address())
	assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)
}

func TestLocalFirstTransaction(t *testing.T) {
	local, keys := newLocal(t)
	c := client.NewClient(local)
	ctx := context.Background()
	src, dst := keys[0].PublicKey().Address(), keys[1].PublicKey().Address()

	tx, err := quorumd.NewTx(&cash.SendMsg{
		Metadata:    quorum.Metadata{Schema: 1},
		Source:      src,
		Destination: dst,
		Amount:      coin.NewAmount(100),
	})
	require.NoError(t, err)
	res, err := c.SignAndBroadcast(ctx, tx, keys[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Height)
	assert.Equal(t, int64(2), local.Height())
	assert.NotEmpty(t, res.ID)

	balance, err := c.Balance(ctx, dst)
	require.NoError(t, err)
	assert.True(t, coin.NewAmount(localBalance+100).Equals(balance), "got %s", balance)

	seq, err := c.Sequence(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	// a transaction that fails the check is not committed
	unsigned, err := quorumd.NewTx(&cash.SendMsg{
		Metadata:    quorum.Metadata{Schema: 1},
		Source:      src,
		Destination: dst,
		Amount:      coin.NewAmount(1),
	})
	require.NoError(t, err)
	_, err = c.SignAndBroadcast(ctx, unsigned)
	assert.Error(t, err)
	assert.Equal(t, int64(2), local.Height())
}

func TestLocalReopen(t *testing.T) {
	application := quorumd.InlineApp(log.NewNopLogger(), false)
	owner := quorum.NewCondition("test", "owner", []byte{1}).Address()
	genesis, err := quorumd.GenesisOptions([]quorum.Address{owner}, coin.NewAmount(1))
	require.NoError(t, err)
	first, err := client.NewLocal(application, "local-chain", genesis)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Height())

	// an application with committed state is not initialized again
	second, err := client.NewLocal(application, "local-chain", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Height())
}

func TestLocalBrokenGenesis(t *testing.T) {
	cases := map[string]struct {
		appState []byte
		wantErr  *errors.Error
	}{
		"missing app state": {
			appState: nil,
			wantErr:  errors.ErrEmpty,
		},
		"invalid json": {
			appState: []byte(`{"cash": [`),
			wantErr:  errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := client.NewLocal(quorumd.InlineApp(log.NewNopLogger(), false), "local-chain", tc.appState)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestLocalCanceledContext(t *testing.T) {
	local, _ := newLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := local.BroadcastTxCommit(ctx, []byte("tx"))
	assert.True(t, errors.ErrTimeout.Is(err), "unexpected error: %+v", err)
	_, err = local.AbciQuery(ctx, "/wallets", nil)
	assert.True(t, errors.ErrTimeout.Is(err), "unexpected error: %+v", err)
}
