package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/near/borsh-go"
	"github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix  = "anchor:account"
	defaultAccountTTL = 30 * time.Second
)

// RedisStore 跨进程共享的账户快照缓存，值为 borsh 编码的 Account
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultAccountTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// getKey 构造 Redis key
func (r *RedisStore) getKey(addr common.PublicKey) string {
	return fmt.Sprintf("%s:%s", accountKeyPrefix, addr.ToBase58())
}

func (r *RedisStore) Get(ctx context.Context, addr common.PublicKey) (Account, bool, error) {
	val, err := r.rdb.Get(ctx, r.getKey(addr)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return Account{}, false, nil
	case err != nil:
		return Account{}, false, fmt.Errorf("redis get error: %w", err)
	}

	var acc Account
	if err := borsh.Deserialize(&acc, val); err != nil {
		// 损坏的缓存按未命中处理
		_ = r.rdb.Del(ctx, r.getKey(addr)).Err()
		return Account{}, false, nil
	}
	return acc, true, nil
}

func (r *RedisStore) Set(ctx context.Context, addr common.PublicKey, acc Account) error {
	val, err := borsh.Serialize(acc)
	if err != nil {
		return fmt.Errorf("encode account snapshot: %w", err)
	}
	return r.rdb.Set(ctx, r.getKey(addr), val, r.ttl).Err()
}

func (r *RedisStore) Invalidate(ctx context.Context, addr common.PublicKey) error {
	return r.rdb.Del(ctx, r.getKey(addr)).Err()
}
