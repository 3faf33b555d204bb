package chain

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"anchor-client-sol/pkg/errs"
	"anchor-client-sol/pkg/logger"
	ptypes "anchor-client-sol/pkg/types"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

const defaultRequestTimeout = 10 * time.Second

// RpcOption RpcNetwork 初始化参数
type RpcOption struct {
	Endpoint       string
	RequestTimeout time.Duration // 单次请求超时，<=0 时使用默认值
}

// RpcNetwork 基于 blocto client 的 Network 实现。
// 带 memcmp 过滤的 getProgramAccounts 走底层 RpcClient，其余使用 client 的类型化接口。
type RpcNetwork struct {
	client  *client.Client
	timeout time.Duration
}

func NewRpcNetwork(opt RpcOption) (*RpcNetwork, error) {
	if opt.Endpoint == "" {
		return nil, fmt.Errorf("rpc endpoint is empty")
	}
	c := client.NewClient(opt.Endpoint)
	if c == nil {
		return nil, fmt.Errorf("rpc client init failed")
	}
	timeout := opt.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &RpcNetwork{client: c, timeout: timeout}, nil
}

func (n *RpcNetwork) GetAccount(ctx context.Context, addr common.PublicKey) (Account, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	info, err := n.client.GetAccountInfo(ctx, addr.ToBase58())
	if err != nil {
		return Account{}, fmt.Errorf("%w: getAccountInfo %s: %v", errs.ErrRpc, addr.ToBase58(), err)
	}
	// 账户不存在时 client 返回零值
	if info.Lamports == 0 && len(info.Data) == 0 && info.Owner == (common.PublicKey{}) {
		return Account{}, fmt.Errorf("%w: %s", errs.ErrAccountNotFound, addr.ToBase58())
	}
	return Account{
		Owner:      info.Owner,
		Lamports:   info.Lamports,
		Data:       info.Data,
		Executable: info.Executable,
		RentEpoch:  info.RentEpoch,
	}, nil
}

func (n *RpcNetwork) GetLatestBlockhash(ctx context.Context) (Blockhash, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	res, err := n.client.GetLatestBlockhash(ctx)
	if err != nil {
		return Blockhash{}, fmt.Errorf("%w: getLatestBlockhash: %v", errs.ErrRpc, err)
	}
	return Blockhash{Blockhash: res.Blockhash, LastValidBlockHeight: res.LatestValidBlockHeight}, nil
}

func (n *RpcNetwork) GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	lamports, err := n.client.GetMinimumBalanceForRentExemption(ctx, dataLen)
	if err != nil {
		return 0, fmt.Errorf("%w: getMinimumBalanceForRentExemption: %v", errs.ErrRpc, err)
	}
	return lamports, nil
}

func (n *RpcNetwork) GetProgramAccountsWithFilters(ctx context.Context, program common.PublicKey, filters []MemcmpFilter) ([]KeyedAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	rpcFilters := make([]rpc.GetProgramAccountsConfigFilter, 0, len(filters))
	for _, f := range filters {
		rpcFilters = append(rpcFilters, rpc.GetProgramAccountsConfigFilter{
			MemCmp: &rpc.GetProgramAccountsConfigFilterMemCmp{
				Offset: f.Offset,
				Bytes:  base58.Encode(f.Bytes),
			},
		})
	}

	start := time.Now()
	res, err := n.client.RpcClient.GetProgramAccountsWithConfig(ctx, program.ToBase58(), rpc.GetProgramAccountsConfig{
		Encoding:   rpc.AccountEncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
		Filters:    rpcFilters,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getProgramAccounts: %v", errs.ErrRpc, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("%w: getProgramAccounts: code=%d message=%s", errs.ErrRpc, res.Error.Code, res.Error.Message)
	}
	logger.Debugf("[RpcNetwork] getProgramAccounts 成功, program=%s, filters=%d, 账户数=%d, 耗时=%v",
		program.ToBase58(), len(filters), len(res.Result), time.Since(start))

	out := make([]KeyedAccount, 0, len(res.Result))
	for _, item := range res.Result {
		pubkey, err := ptypes.TryPubkeyFromBase58(item.Pubkey)
		if err != nil {
			logger.Warnf("[RpcNetwork] getProgramAccounts 返回非法地址: %s", item.Pubkey)
			continue
		}
		acc, err := toAccount(item.Account)
		if err != nil {
			logger.Warnf("[RpcNetwork] 账户数据解析失败: %s, err=%v", item.Pubkey, err)
			continue
		}
		out = append(out, KeyedAccount{Pubkey: pubkey, Account: acc})
	}
	return out, nil
}

func (n *RpcNetwork) SimulateTransaction(ctx context.Context, tx types.Transaction) (SimulateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	res, err := n.client.SimulateTransactionWithConfig(ctx, tx, client.SimulateTransactionConfig{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
		Commitment:             rpc.CommitmentConfirmed,
	})
	if err != nil {
		return SimulateResult{}, fmt.Errorf("%w: simulateTransaction: %v", errs.ErrRpc, err)
	}
	return SimulateResult{
		Err:           res.Err,
		Logs:          res.Logs,
		UnitsConsumed: res.UnitConsumed,
	}, nil
}

func (n *RpcNetwork) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	sig, err := n.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("%w: sendTransaction: %v", errs.ErrRpc, err)
	}
	return sig, nil
}

func (n *RpcNetwork) ConfirmTransaction(ctx context.Context, signature string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	status, err := n.client.GetSignatureStatusWithConfig(ctx, signature, client.GetSignatureStatusesConfig{
		SearchTransactionHistory: true,
	})
	if err != nil {
		return fmt.Errorf("%w: getSignatureStatuses: %v", errs.ErrRpc, err)
	}
	if status == nil {
		return fmt.Errorf("signature %s not found", signature)
	}
	if status.Err != nil {
		return fmt.Errorf("transaction %s failed: %v", signature, status.Err)
	}

	var level rpc.Commitment
	if status.ConfirmationStatus != nil {
		level = *status.ConfirmationStatus
	}
	switch level {
	case rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return nil
	default:
		return fmt.Errorf("transaction %s still in flight (status=%q)", signature, level)
	}
}

// toAccount base64 编码的账户数据形如 ["<data>", "base64"]
func toAccount(info rpc.AccountInfo) (Account, error) {
	owner, err := ptypes.TryPubkeyFromBase58(info.Owner)
	if err != nil {
		return Account{}, fmt.Errorf("invalid owner: %w", err)
	}
	var data []byte
	if parts, ok := info.Data.([]any); ok && len(parts) > 0 {
		encoded, ok := parts[0].(string)
		if !ok {
			return Account{}, fmt.Errorf("unexpected data type %T", parts[0])
		}
		if data, err = base64.StdEncoding.DecodeString(encoded); err != nil {
			return Account{}, fmt.Errorf("decode data: %w", err)
		}
	}
	return Account{
		Owner:      owner,
		Lamports:   info.Lamports,
		Data:       data,
		Executable: info.Executable,
		RentEpoch:  info.RentEpoch,
	}, nil
}
