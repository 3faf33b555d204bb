package chain

import (
	"context"

	"anchor-client-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/common"
)

// CachedNetwork 在任意 Network 外层缓存 GetAccount 结果，其余调用直接透传。
// 只缓存成功的查询，查询失败不会写入缓存。
type CachedNetwork struct {
	Network
	store AccountStore
}

func NewCachedNetwork(inner Network, store AccountStore) *CachedNetwork {
	return &CachedNetwork{Network: inner, store: store}
}

func (c *CachedNetwork) GetAccount(ctx context.Context, addr common.PublicKey) (Account, error) {
	acc, ok, err := c.store.Get(ctx, addr)
	if err != nil {
		logger.Warnf("[CachedNetwork] 缓存读取失败, 回源查询: addr=%s, err=%v", addr.ToBase58(), err)
	} else if ok {
		return acc, nil
	}

	acc, err = c.Network.GetAccount(ctx, addr)
	if err != nil {
		return Account{}, err
	}
	if err := c.store.Set(ctx, addr, acc); err != nil {
		logger.Warnf("[CachedNetwork] 缓存写入失败: addr=%s, err=%v", addr.ToBase58(), err)
	}
	return acc, nil
}

// Invalidate 交易提交后调用方可主动失效相关账户
func (c *CachedNetwork) Invalidate(ctx context.Context, addrs ...common.PublicKey) error {
	for _, addr := range addrs {
		if err := c.store.Invalidate(ctx, addr); err != nil {
			return err
		}
	}
	return nil
}
