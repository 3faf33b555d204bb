package types

import (
	"anchor-client-sol/pkg/errs"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
)

const PubkeyLength = 32

// TryPubkeyFromBase58 解析 base58 字符串为 PublicKey，失败时返回 ErrInvalidAddress（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (common.PublicKey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("%w: decode base58 %q: %v", errs.ErrInvalidAddress, s, err)
	}
	return TryPubkeyFromBytes(data)
}

// TryPubkeyFromBytes 要求输入恰好 32 字节
func TryPubkeyFromBytes(data []byte) (common.PublicKey, error) {
	if len(data) != PubkeyLength {
		return common.PublicKey{}, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidAddress, len(data), PubkeyLength)
	}
	var p common.PublicKey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 用于常量初始化，非法输入直接 panic
func PubkeyFromBase58(s string) common.PublicKey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
