// Package chaintest 提供内存版 chain.Network，供各包单元测试使用。
package chaintest

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// MemoryNetwork 按插入顺序保存账户，GetProgramAccountsWithFilters 在服务端语义下执行 memcmp。
// 模拟、发送、确认行为可通过对应函数字段替换。
type MemoryNetwork struct {
	mu       sync.Mutex
	order    []common.PublicKey
	accounts map[common.PublicKey]chain.Account

	Blockhash    string
	RentPerByte  uint64
	SimulateFunc func(tx types.Transaction) (chain.SimulateResult, error)
	SendFunc     func(tx types.Transaction) (string, error)
	ConfirmFunc  func(attempt int, signature string) error

	Calls struct {
		GetAccount         int
		GetLatestBlockhash int
		GetProgramAccounts int
		Simulate           int
		Send               int
		Confirm            int
	}
	Sent []types.Transaction
}

func NewMemoryNetwork() *MemoryNetwork {
	return &MemoryNetwork{
		accounts:    make(map[common.PublicKey]chain.Account),
		Blockhash:   "EtWTRABZaYq6iMfeYKouRu166VU2xqa1wcaWoxPkrZBG",
		RentPerByte: 6960,
	}
}

// Put 写入或覆盖账户
func (m *MemoryNetwork) Put(addr common.PublicKey, acc chain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[addr]; !ok {
		m.order = append(m.order, addr)
	}
	m.accounts[addr] = acc
}

func (m *MemoryNetwork) GetAccount(_ context.Context, addr common.PublicKey) (chain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.GetAccount++
	acc, ok := m.accounts[addr]
	if !ok {
		return chain.Account{}, fmt.Errorf("%w: %s", errs.ErrAccountNotFound, addr.ToBase58())
	}
	return acc, nil
}

func (m *MemoryNetwork) GetLatestBlockhash(_ context.Context) (chain.Blockhash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.GetLatestBlockhash++
	return chain.Blockhash{Blockhash: m.Blockhash, LastValidBlockHeight: 1000}, nil
}

func (m *MemoryNetwork) GetMinimumBalanceForRentExemption(_ context.Context, dataLen uint64) (uint64, error) {
	return (dataLen + 128) * m.RentPerByte * 2, nil
}

func (m *MemoryNetwork) GetProgramAccountsWithFilters(_ context.Context, program common.PublicKey, filters []chain.MemcmpFilter) ([]chain.KeyedAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.GetProgramAccounts++

	var out []chain.KeyedAccount
	for _, addr := range m.order {
		acc := m.accounts[addr]
		if acc.Owner != program || !matchAll(acc.Data, filters) {
			continue
		}
		out = append(out, chain.KeyedAccount{Pubkey: addr, Account: acc})
	}
	return out, nil
}

func (m *MemoryNetwork) SimulateTransaction(_ context.Context, tx types.Transaction) (chain.SimulateResult, error) {
	m.mu.Lock()
	m.Calls.Simulate++
	fn := m.SimulateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(tx)
	}
	return chain.SimulateResult{}, nil
}

func (m *MemoryNetwork) SendTransaction(_ context.Context, tx types.Transaction) (string, error) {
	m.mu.Lock()
	m.Calls.Send++
	m.Sent = append(m.Sent, tx)
	fn := m.SendFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(tx)
	}
	return "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW", nil
}

func (m *MemoryNetwork) ConfirmTransaction(_ context.Context, signature string) error {
	m.mu.Lock()
	m.Calls.Confirm++
	attempt := m.Calls.Confirm
	fn := m.ConfirmFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(attempt, signature)
	}
	return nil
}

func matchAll(data []byte, filters []chain.MemcmpFilter) bool {
	for _, f := range filters {
		end := f.Offset + uint64(len(f.Bytes))
		if end > uint64(len(data)) || !bytes.Equal(data[f.Offset:end], f.Bytes) {
			return false
		}
	}
	return true
}

var _ chain.Network = (*MemoryNetwork)(nil)
