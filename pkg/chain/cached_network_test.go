package chain_test

import (
	"context"
	"testing"
	"time"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/chain/chaintest"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedNetwork_GetAccount(t *testing.T) {
	ctx := context.Background()
	addr := common.PublicKeyFromString("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")

	inner := chaintest.NewMemoryNetwork()
	inner.Put(addr, chain.Account{Lamports: 10, Data: []byte{1}})

	n := chain.NewCachedNetwork(inner, chain.NewLRUStore(8, time.Minute))

	for i := 0; i < 3; i++ {
		acc, err := n.GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), acc.Lamports)
	}
	assert.Equal(t, 1, inner.Calls.GetAccount)

	require.NoError(t, n.Invalidate(ctx, addr))
	_, err := n.GetAccount(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls.GetAccount)
}

func TestCachedNetwork_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	addr := common.PublicKeyFromString("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")

	inner := chaintest.NewMemoryNetwork()
	n := chain.NewCachedNetwork(inner, chain.NewLRUStore(8, time.Minute))

	_, err := n.GetAccount(ctx, addr)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	_, err = n.GetAccount(ctx, addr)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.Equal(t, 2, inner.Calls.GetAccount)
}

func TestCachedNetwork_PassThrough(t *testing.T) {
	inner := chaintest.NewMemoryNetwork()
	n := chain.NewCachedNetwork(inner, chain.NewLRUStore(8, time.Minute))

	bh, err := n.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inner.Blockhash, bh.Blockhash)
}
