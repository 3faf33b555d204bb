package chain

import (
	"context"

	"anchor-client-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/common"
)

// AccountStore 账户快照缓存
type AccountStore interface {
	Get(ctx context.Context, addr common.PublicKey) (Account, bool, error)
	Set(ctx context.Context, addr common.PublicKey, acc Account) error
	Invalidate(ctx context.Context, addr common.PublicKey) error
}

// TieredStore 多级缓存：按顺序读取，低层命中后回填高层，写入和失效作用于所有层
type TieredStore []AccountStore

func (t TieredStore) Get(ctx context.Context, addr common.PublicKey) (Account, bool, error) {
	for i, s := range t {
		acc, ok, err := s.Get(ctx, addr)
		if err != nil {
			logger.Warnf("[TieredStore] 第 %d 层读取失败: addr=%s, err=%v", i, addr.ToBase58(), err)
			continue
		}
		if !ok {
			continue
		}
		for j := 0; j < i; j++ {
			if err := t[j].Set(ctx, addr, acc); err != nil {
				logger.Warnf("[TieredStore] 第 %d 层回填失败: addr=%s, err=%v", j, addr.ToBase58(), err)
			}
		}
		return acc, true, nil
	}
	return Account{}, false, nil
}

func (t TieredStore) Set(ctx context.Context, addr common.PublicKey, acc Account) error {
	var firstErr error
	for _, s := range t {
		if err := s.Set(ctx, addr, acc); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t TieredStore) Invalidate(ctx context.Context, addr common.PublicKey) error {
	var firstErr error
	for _, s := range t {
		if err := s.Invalidate(ctx, addr); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
