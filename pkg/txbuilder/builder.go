// Package txbuilder 组装未签名交易：解析 payer、编译 message、追加 memo 与 compute budget 指令。
package txbuilder

import (
	"encoding/base64"
	"fmt"

	"anchor-client-sol/pkg/codec"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

const signatureLength = 64

// ResolvePayer 返回第一个同时为 signer 和 writable 的账户
func ResolvePayer(metas []types.AccountMeta) (common.PublicKey, error) {
	for _, m := range metas {
		if m.IsSigner && m.IsWritable {
			return m.PubKey, nil
		}
	}
	return common.PublicKey{}, errs.ErrNoPayer
}

// BuildUnsigned 编码单条指令并编译为未签名交易，blockhash 留空到提交前再绑定
func BuildUnsigned(program common.PublicKey, selector string, args any, metas []types.AccountMeta) (types.Transaction, error) {
	ix, err := codec.EncodeInstruction(program, selector, args, metas)
	if err != nil {
		return types.Transaction{}, err
	}
	payer, err := ResolvePayer(metas)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("build %s: %w", selector, err)
	}
	return BuildUnsignedWithInstructions(payer, ix)
}

// BuildUnsignedWithInstructions 多指令交易，payer 由调用方指定
func BuildUnsignedWithInstructions(payer common.PublicKey, ixs ...types.Instruction) (types.Transaction, error) {
	if payer == (common.PublicKey{}) {
		return types.Transaction{}, errs.ErrNoPayer
	}
	msg := types.NewMessage(types.NewMessageParam{
		FeePayer:     payer,
		Instructions: ixs,
	})
	return types.Transaction{Message: msg}, nil
}

// IsSigned 存在任意非零签名即视为已签名
func IsSigned(tx types.Transaction) bool {
	for _, sig := range tx.Signatures {
		for _, b := range sig {
			if b != 0 {
				return true
			}
		}
	}
	return false
}

// SignerIndex 账户在 message 中的下标，非签名账户返回 -1
func SignerIndex(msg types.Message, key common.PublicKey) int {
	n := int(msg.Header.NumRequireSignatures)
	for i := 0; i < n && i < len(msg.Accounts); i++ {
		if msg.Accounts[i] == key {
			return i
		}
	}
	return -1
}

// RequiredSigners message 头部声明的签名账户
func RequiredSigners(msg types.Message) []common.PublicKey {
	n := int(msg.Header.NumRequireSignatures)
	if n > len(msg.Accounts) {
		n = len(msg.Accounts)
	}
	return msg.Accounts[:n]
}

// WithZeroSignatures 返回签名槽位补齐后的副本，缺失的签名以 64 字节 0 填充
func WithZeroSignatures(tx types.Transaction) types.Transaction {
	n := int(tx.Message.Header.NumRequireSignatures)
	sigs := make([]types.Signature, n)
	for i := 0; i < n; i++ {
		if i < len(tx.Signatures) && len(tx.Signatures[i]) == signatureLength {
			sigs[i] = tx.Signatures[i]
		} else {
			sigs[i] = make([]byte, signatureLength)
		}
	}
	tx.Signatures = sigs
	return tx
}

// Serialize 线上格式，未签名时以零签名占位
func Serialize(tx types.Transaction) ([]byte, error) {
	filled := WithZeroSignatures(tx)
	raw, err := filled.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}
	return raw, nil
}

// ToBase64 base64 编码的线上格式
func ToBase64(tx types.Transaction) (string, error) {
	raw, err := Serialize(tx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
