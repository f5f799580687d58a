package quorum_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/quorum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()

	_, ok := quorum.GetHeight(ctx)
	assert.False(t, ok)

	ctx = quorum.WithHeight(ctx, 7)
	h, ok := quorum.GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { quorum.WithHeight(ctx, 8) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { quorum.GetChainID(ctx) })
	assert.Panics(t, func() { quorum.WithChainID(ctx, "no") })

	ctx = quorum.WithChainID(ctx, "quorum-test")
	assert.Equal(t, "quorum-test", quorum.GetChainID(ctx))
	assert.Panics(t, func() { quorum.WithChainID(ctx, "quorum-other") })
}

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()
	_, err := quorum.BlockTime(ctx)
	assert.Error(t, err)

	now := time.Now().UTC()
	hctx := quorum.WithHeader(ctx, abci.Header{Time: now})
	got, err := quorum.BlockTime(hctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	later := now.Add(time.Hour)
	got, err = quorum.BlockTime(quorum.WithBlockTime(hctx, later))
	require.NoError(t, err)
	assert.Equal(t, later, got)
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, quorum.DefaultLogger, quorum.GetLogger(ctx))

	logger := log.NewNopLogger()
	ctx = quorum.WithLogger(ctx, logger)
	ctx = quorum.WithLogInfo(ctx, "module", "test")
	assert.NotNil(t, quorum.GetLogger(ctx))
}
