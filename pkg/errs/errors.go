package errs

import "errors"

// 客户端错误分类。调用方统一使用 errors.Is 判定，具体上下文通过 fmt.Errorf("...: %w") 包装。
var (
	// 地址与编解码
	ErrInvalidAddress   = errors.New("invalid address")
	ErrMalformedAccount = errors.New("malformed account")
	ErrDeserialization  = errors.New("deserialization error")
	ErrTypeMismatch     = errors.New("account type mismatch")
	ErrUnknownField     = errors.New("unknown field")

	// PDA 推导
	ErrNoValidBump  = errors.New("no valid bump")
	ErrInvalidSeeds = errors.New("invalid seeds")

	// 交易构建与签名
	ErrNoPayer       = errors.New("no payer")
	ErrAlreadySigned = errors.New("transaction already signed")
	ErrMissingSigner = errors.New("missing signer")

	// 网络
	ErrRpc             = errors.New("rpc error")
	ErrAccountNotFound = errors.New("account not found")

	// 交易生命周期
	ErrSimulation          = errors.New("simulation error")
	ErrSubmission          = errors.New("submission error")
	ErrConfirmationFailed  = errors.New("confirmation failed")
	ErrConfirmationTimeout = errors.New("confirmation timeout")
)
