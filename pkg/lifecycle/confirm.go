package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anchor-client-sol/pkg/errs"
	"anchor-client-sol/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// isTransient 未找到或仍在处理中的交易需要继续轮询
func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "still in flight")
}

// newBackOff 默认固定间隔；开启指数退避后间隔逐步增长，最大尝试次数不变
func (m *Manager) newBackOff(interval time.Duration) backoff.BackOff {
	if !m.opt.ExponentialBackoff {
		return backoff.NewConstantBackOff(interval)
	}
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(interval),
		backoff.WithMaxInterval(m.opt.MaxInterval),
		backoff.WithMaxElapsedTime(0),
	)
}

// WaitForConfirmation 轮询确认状态，最多 maxAttempts 次。
// 瞬时错误继续轮询，其他错误立即返回 ErrConfirmationFailed，次数耗尽返回 ErrConfirmationTimeout。
// ctx 取消时直接返回 ctx 的错误。maxAttempts / interval 非正时使用配置值。
func (m *Manager) WaitForConfirmation(ctx context.Context, signature string, maxAttempts int, interval time.Duration) error {
	if maxAttempts <= 0 {
		maxAttempts = m.opt.ConfirmMaxAttempts
	}
	if interval <= 0 {
		interval = m.opt.ConfirmInterval
	}

	var (
		attempts int
		lastErr  error
	)
	operation := func() error {
		attempts++
		err := m.network.ConfirmTransaction(ctx, signature)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		if isTransient(err) {
			lastErr = err
			return err
		}
		return backoff.Permanent(fmt.Errorf("%w: %v", errs.ErrConfirmationFailed, err))
	}
	notify := func(err error, next time.Duration) {
		logger.Debugf("[lifecycle] 等待确认: sig=%s, attempt=%d/%d, next=%v, err=%v", signature, attempts, maxAttempts, next, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(m.newBackOff(interval), uint64(maxAttempts-1)), ctx)
	err := backoff.RetryNotify(operation, b, notify)

	switch {
	case err == nil:
		m.transition(ctx, signature, StateConfirmed, nil)
		return nil
	case errors.Is(err, errs.ErrConfirmationFailed):
		logger.Warnf("[lifecycle] 交易确认失败: sig=%s, err=%v", signature, err)
		m.transition(ctx, signature, StateFailed, err)
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		err = fmt.Errorf("%w: %d attempts, last error: %v", errs.ErrConfirmationTimeout, attempts, lastErr)
		logger.Warnf("[lifecycle] 交易确认超时: sig=%s, err=%v", signature, err)
		m.transition(ctx, signature, StateTimedOut, err)
		return err
	}
}
