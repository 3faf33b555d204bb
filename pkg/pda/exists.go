package pda

import (
	"context"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/common"
)

// State PDA 存在性
type State int

const (
	// StateNotFound 查询本身失败；可能是账户不存在，也可能是网络抖动，调用方需重试后再下结论
	StateNotFound State = iota
	// StateExists 账户存在且有余额
	StateExists
	// StateNeedsReinitialization 账户记录存在但余额为 0
	StateNeedsReinitialization
)

func (s State) String() string {
	switch s {
	case StateExists:
		return "Exists"
	case StateNeedsReinitialization:
		return "NeedsReinitialization"
	default:
		return "NotFound"
	}
}

// AccountFetcher 单账户查询
type AccountFetcher interface {
	GetAccount(ctx context.Context, addr common.PublicKey) (chain.Account, error)
}

// Exists 判断地址上的账户状态
func Exists(ctx context.Context, fetcher AccountFetcher, addr common.PublicKey) State {
	acc, err := fetcher.GetAccount(ctx, addr)
	if err != nil {
		logger.Debugf("[pda] 账户查询失败: addr=%s, err=%v", addr.ToBase58(), err)
		return StateNotFound
	}
	if acc.Lamports > 0 {
		return StateExists
	}
	return StateNeedsReinitialization
}

// FindWithState 推导 PDA 并查询其状态
func FindWithState(ctx context.Context, fetcher AccountFetcher, seeds [][]byte, program common.PublicKey) (common.PublicKey, uint8, State, error) {
	addr, bump, err := FindProgramAddress(seeds, program)
	if err != nil {
		return common.PublicKey{}, 0, StateNotFound, err
	}
	return addr, bump, Exists(ctx, fetcher, addr), nil
}
