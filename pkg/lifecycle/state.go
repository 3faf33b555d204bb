package lifecycle

import (
	"context"
	"time"
)

// State 交易生命周期状态：Built -> Signed -> Submitted -> {Confirmed, Failed, TimedOut}
type State int

const (
	StateBuilt State = iota
	StateSigned
	StateSubmitted
	StateConfirmed
	StateFailed
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal 是否为终态
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed || s == StateTimedOut
}

// Event 状态迁移事件
type Event struct {
	Signature string `json:"signature"`
	State     string `json:"state"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"` // 毫秒
}

// EventSink 状态迁移的外部订阅方，发布失败不影响交易流程
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

func newEvent(sig string, state State, err error) Event {
	ev := Event{Signature: sig, State: state.String(), Timestamp: time.Now().UnixMilli()}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}
