// Package chain 定义客户端依赖的网络契约，以及基于 JSON-RPC 的默认实现和可组合的缓存包装。
package chain

import (
	"context"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// Account 单次查询得到的账户快照
type Account struct {
	Owner      common.PublicKey
	Lamports   uint64
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// KeyedAccount 批量查询结果中的一项
type KeyedAccount struct {
	Pubkey  common.PublicKey
	Account Account
}

// MemcmpFilter 服务端字节比较过滤条件
type MemcmpFilter struct {
	Offset uint64
	Bytes  []byte
}

// Blockhash 最新区块哈希
type Blockhash struct {
	Blockhash            string
	LastValidBlockHeight uint64
}

// SimulateResult 模拟执行结果，Err 为空表示执行成功
type SimulateResult struct {
	Err           any
	Logs          []string
	UnitsConsumed *uint64
}

// Network 客户端所需的全部链上调用，每次调用都是一次独立往返。
type Network interface {
	GetAccount(ctx context.Context, addr common.PublicKey) (Account, error)
	GetLatestBlockhash(ctx context.Context) (Blockhash, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)
	GetProgramAccountsWithFilters(ctx context.Context, program common.PublicKey, filters []MemcmpFilter) ([]KeyedAccount, error)
	SimulateTransaction(ctx context.Context, tx types.Transaction) (SimulateResult, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	// ConfirmTransaction 交易已确认返回 nil；未找到或仍在处理中返回包含
	// "not found" / "still in flight" 的错误；执行失败返回其他错误。
	ConfirmTransaction(ctx context.Context, signature string) error
}
