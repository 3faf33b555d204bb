package chain

import (
	"context"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRUStore 进程内带过期时间的 LRU 缓存
type LRUStore struct {
	lru *expirable.LRU[common.PublicKey, Account]
}

func NewLRUStore(size int, ttl time.Duration) *LRUStore {
	return &LRUStore{lru: expirable.NewLRU[common.PublicKey, Account](size, nil, ttl)}
}

func (s *LRUStore) Get(_ context.Context, addr common.PublicKey) (Account, bool, error) {
	acc, ok := s.lru.Get(addr)
	return acc, ok, nil
}

func (s *LRUStore) Set(_ context.Context, addr common.PublicKey, acc Account) error {
	s.lru.Add(addr, acc)
	return nil
}

func (s *LRUStore) Invalidate(_ context.Context, addr common.PublicKey) error {
	s.lru.Remove(addr)
	return nil
}
