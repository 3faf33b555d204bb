// Package query 提供单账户查询、类型化解码以及基于 schema 的批量过滤扫描。
package query

import (
	"context"
	"fmt"
	"time"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/codec"
	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/discriminator"
	"anchor-client-sol/pkg/logger"
	"anchor-client-sol/pkg/pda"
	"anchor-client-sol/pkg/schema"
	"anchor-client-sol/pkg/utils"

	"github.com/blocto/solana-go-sdk/common"
)

// Engine 账户查询引擎，所有读取都是对 Network 的单次往返
type Engine struct {
	network chain.Network
	workers int
}

func NewEngine(network chain.Network) *Engine {
	return &Engine{network: network, workers: consts.CpuCount}
}

// WithWorkers 设置 Scan 解码并发数
func (e *Engine) WithWorkers(n int) *Engine {
	if n > 0 {
		e.workers = n
	}
	return e
}

func (e *Engine) Network() chain.Network {
	return e.network
}

// GetAccount 单账户查询，失败时返回 ErrRpc 或 ErrAccountNotFound
func (e *Engine) GetAccount(ctx context.Context, addr common.PublicKey) (chain.Account, error) {
	return e.network.GetAccount(ctx, addr)
}

// GetTyped 查询并解码到 out
func (e *Engine) GetTyped(ctx context.Context, addr common.PublicKey, out codec.Tagged) error {
	acc, err := e.network.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	if err := codec.DecodeAccount(acc.Data, out); err != nil {
		return fmt.Errorf("decode account %s: %w", addr.ToBase58(), err)
	}
	return nil
}

func (e *Engine) Exists(ctx context.Context, addr common.PublicKey) pda.State {
	return pda.Exists(ctx, e.network, addr)
}

func (e *Engine) MinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error) {
	return e.network.GetMinimumBalanceForRentExemption(ctx, dataLen)
}

func (e *Engine) LatestBlockhash(ctx context.Context) (chain.Blockhash, error) {
	return e.network.GetLatestBlockhash(ctx)
}

// Keyed 扫描结果中的一项
type Keyed[T any] struct {
	Pubkey common.PublicKey
	Value  T
}

type decoded[T any] struct {
	item Keyed[T]
	ok   bool
}

// Scan 按 schema 构造过滤条件，一次 getProgramAccounts 拉取后逐个独立解码。
// 长度不超过 8 字节的账户静默跳过，解码失败的账户记录告警后跳过，结果保持上游顺序。
func Scan[T any, PT interface {
	*T
	schema.AccountSchema
}](ctx context.Context, e *Engine, program common.PublicKey, filters ...schema.FieldFilter) ([]Keyed[T], error) {
	var zero T
	memcmp, err := schema.BuildFilters(PT(&zero), filters)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	accounts, err := e.network.GetProgramAccountsWithFilters(ctx, program, memcmp)
	if err != nil {
		return nil, err
	}

	results := utils.ParallelMap(accounts, e.workers, func(ka chain.KeyedAccount) decoded[T] {
		if len(ka.Account.Data) <= discriminator.Size {
			return decoded[T]{}
		}
		var v T
		if err := codec.DecodeAccount(ka.Account.Data, PT(&v)); err != nil {
			logger.Warnf("[query] 账户解码失败，跳过: program=%s, account=%s, err=%v",
				program.ToBase58(), ka.Pubkey.ToBase58(), err)
			return decoded[T]{}
		}
		return decoded[T]{item: Keyed[T]{Pubkey: ka.Pubkey, Value: v}, ok: true}
	})

	out := make([]Keyed[T], 0, len(results))
	for _, r := range results {
		if r.ok {
			out = append(out, r.item)
		}
	}
	logger.Debugf("[query] Scan 完成: program=%s, filters=%d, 返回=%d, 解码成功=%d, 耗时=%v",
		program.ToBase58(), len(memcmp), len(accounts), len(out), time.Since(start))
	return out, nil
}
