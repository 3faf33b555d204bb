// Package lifecycle 负责交易的签名、模拟、费用估算、提交与确认轮询，并记录每笔交易的状态。
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/errs"
	"anchor-client-sol/pkg/logger"
	"anchor-client-sol/pkg/txbuilder"
	ptypes "anchor-client-sol/pkg/types"

	"github.com/blocto/solana-go-sdk/types"
)

const (
	DefaultConfirmMaxAttempts = 60
	DefaultConfirmInterval    = 500 * time.Millisecond
	defaultMaxInterval        = 5 * time.Second
	defaultPublishTimeout     = 3 * time.Second
)

// Option 生命周期管理参数，零值字段使用默认值
type Option struct {
	BaseFeeLamports               uint64        // 每个签名的基础费用
	ComputeUnitPriceMicroLamports uint64        // 计算单元单价
	ConfirmMaxAttempts            int           // 确认轮询最大次数
	ConfirmInterval               time.Duration // 轮询间隔（指数退避时为初始间隔）
	ExponentialBackoff            bool          // 是否使用指数退避
	MaxInterval                   time.Duration // 指数退避的最大间隔
}

func (o Option) withDefaults() Option {
	if o.BaseFeeLamports == 0 {
		o.BaseFeeLamports = consts.LamportsPerSignature
	}
	if o.ComputeUnitPriceMicroLamports == 0 {
		o.ComputeUnitPriceMicroLamports = consts.ComputeUnitPriceMicroLamports
	}
	if o.ConfirmMaxAttempts <= 0 {
		o.ConfirmMaxAttempts = DefaultConfirmMaxAttempts
	}
	if o.ConfirmInterval <= 0 {
		o.ConfirmInterval = DefaultConfirmInterval
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = defaultMaxInterval
	}
	return o
}

// Manager 交易生命周期管理器，可被多个协程并发使用
type Manager struct {
	network chain.Network
	opt     Option
	sink    EventSink

	mu       sync.RWMutex
	statuses map[string]State
}

// NewManager sink 可为 nil
func NewManager(network chain.Network, opt Option, sink EventSink) *Manager {
	return &Manager{
		network:  network,
		opt:      opt.withDefaults(),
		sink:     sink,
		statuses: make(map[string]State),
	}
}

func (m *Manager) Option() Option {
	return m.opt
}

// Status 查询交易签名对应的状态
func (m *Manager) Status(signature string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.statuses[signature]
	return s, ok
}

// StateOf 未签名交易为 Built，已签名交易返回状态表中的记录
func (m *Manager) StateOf(tx types.Transaction) State {
	if !txbuilder.IsSigned(tx) {
		return StateBuilt
	}
	sig, err := ptypes.SignatureFromBytes(tx.Signatures[0])
	if err != nil {
		return StateSigned
	}
	if s, ok := m.Status(sig.String()); ok {
		return s
	}
	return StateSigned
}

func (m *Manager) transition(ctx context.Context, sig string, state State, cause error) {
	m.mu.Lock()
	m.statuses[sig] = state
	m.mu.Unlock()

	if m.sink == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultPublishTimeout)
	defer cancel()
	if err := m.sink.Publish(pubCtx, newEvent(sig, state, cause)); err != nil {
		logger.Warnf("[lifecycle] 状态事件发布失败: sig=%s, state=%s, err=%v", sig, state, err)
	}
}

// bindAndSign 绑定最新 blockhash 后签名，签名前的 blockhash 过期会被网络拒绝
func (m *Manager) bindAndSign(ctx context.Context, tx types.Transaction, signers []Signer, requireAll bool) (types.Transaction, error) {
	bh, err := m.network.GetLatestBlockhash(ctx)
	if err != nil {
		return types.Transaction{}, err
	}
	tx.Message.RecentBlockHash = bh.Blockhash
	return signTransaction(tx, signers, requireAll)
}

// SignAndSubmit 签名、提交并阻塞等待确认，返回交易签名
func (m *Manager) SignAndSubmit(ctx context.Context, tx types.Transaction, signers []Signer) (string, error) {
	signed, err := m.bindAndSign(ctx, tx, signers, true)
	if err != nil {
		return "", err
	}
	sig, err := ptypes.SignatureFromBytes(signed.Signatures[0])
	if err != nil {
		return "", err
	}
	sigStr := sig.String()
	m.transition(ctx, sigStr, StateSigned, nil)

	start := time.Now()
	if _, err := m.network.SendTransaction(ctx, signed); err != nil {
		m.transition(ctx, sigStr, StateFailed, err)
		return sigStr, fmt.Errorf("%w: %v", errs.ErrSubmission, err)
	}
	m.transition(ctx, sigStr, StateSubmitted, nil)
	logger.Infof("[lifecycle] 交易已提交: sig=%s", sigStr)

	if err := m.WaitForConfirmation(ctx, sigStr, m.opt.ConfirmMaxAttempts, m.opt.ConfirmInterval); err != nil {
		return sigStr, err
	}
	logger.Infof("[lifecycle] 交易已确认: sig=%s, 耗时=%v", sigStr, time.Since(start))
	return sigStr, nil
}

// Simulate 绑定最新 blockhash 并用给定的签名者签名后模拟执行，不广播。
// 执行失败时同时返回结果与 ErrSimulation，便于查看日志。
func (m *Manager) Simulate(ctx context.Context, tx types.Transaction, signers []Signer) (*chain.SimulateResult, error) {
	signed, err := m.bindAndSign(ctx, tx, signers, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSimulation, err)
	}
	res, err := m.network.SimulateTransaction(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSimulation, err)
	}
	if res.Err != nil {
		logger.Warnf("[lifecycle] 模拟执行失败: err=%v, logs=%d", res.Err, len(res.Logs))
		return &res, fmt.Errorf("%w: %v", errs.ErrSimulation, res.Err)
	}
	return &res, nil
}

// EstimateFee 签名数 * 基础费用 + 计算单元 * 单价 / 1e6；模拟未返回计算单元时按 0 计
func (m *Manager) EstimateFee(ctx context.Context, tx types.Transaction, signers []Signer) (uint64, error) {
	res, err := m.Simulate(ctx, tx, signers)
	if err != nil {
		return 0, err
	}

	var units uint64
	if res.UnitsConsumed != nil {
		units = *res.UnitsConsumed
	}
	baseFee := uint64(tx.Message.Header.NumRequireSignatures) * m.opt.BaseFeeLamports
	computeFee := units * m.opt.ComputeUnitPriceMicroLamports / consts.MicroLamportsPerLamport
	total := baseFee + computeFee

	logger.Infof("[lifecycle] 预估费用: %d lamports (base=%d, compute=%d, units=%d)", total, baseFee, computeFee, units)
	return total, nil
}
