package txbuilder

import (
	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// AddMemo 追加一条 memo 指令。
// memo 程序与 payer 不在账户表中时以只读、非签名账户追加到末尾，已有账户的下标保持不变。
// 前置条件：Memo 程序要求被引用的账户全部签名，payer 应当已是 message 中的签名账户；
// 以非签名账户追加的 payer 可以通过编译和模拟，但链上执行会失败。可用 SignerIndex 预先检查。
func AddMemo(tx *types.Transaction, text string, payer common.PublicKey) error {
	if IsSigned(*tx) {
		return errs.ErrAlreadySigned
	}
	msg := &tx.Message
	memoIdx := ensureReadonlyKey(msg, consts.MemoProgram)
	payerIdx := ensureReadonlyKey(msg, payer)

	msg.Instructions = append(msg.Instructions, types.CompiledInstruction{
		ProgramIDIndex: memoIdx,
		Accounts:       []int{payerIdx},
		Data:           []byte(text),
	})
	return nil
}

// ensureReadonlyKey 返回 key 的下标，不存在时追加到只读非签名区
func ensureReadonlyKey(msg *types.Message, key common.PublicKey) int {
	for i, k := range msg.Accounts {
		if k == key {
			return i
		}
	}
	msg.Accounts = append(msg.Accounts, key)
	msg.Header.NumReadonlyUnsignedAccounts++
	return len(msg.Accounts) - 1
}
