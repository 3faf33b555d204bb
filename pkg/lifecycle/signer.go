package lifecycle

import (
	"fmt"

	"anchor-client-sol/pkg/errs"
	"anchor-client-sol/pkg/txbuilder"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// Signer 密钥提供方，只需要能对消息字节签名
type Signer interface {
	PublicKey() common.PublicKey
	Sign(message []byte) []byte
}

type accountSigner struct {
	account types.Account
}

// FromAccount 把本地 Account 包装为 Signer
func FromAccount(a types.Account) Signer {
	return accountSigner{account: a}
}

func (s accountSigner) PublicKey() common.PublicKey { return s.account.PublicKey }
func (s accountSigner) Sign(message []byte) []byte  { return s.account.Sign(message) }

// signTransaction 按 message 中签名账户的顺序放置签名。
// requireAll 为 false 时缺失的签名以零填充，仅用于模拟执行。没有任何签名账户时返回 ErrNoPayer。
func signTransaction(tx types.Transaction, signers []Signer, requireAll bool) (types.Transaction, error) {
	required := txbuilder.RequiredSigners(tx.Message)
	if len(required) == 0 {
		return types.Transaction{}, fmt.Errorf("%w: message declares no required signers", errs.ErrNoPayer)
	}

	message, err := tx.Message.Serialize()
	if err != nil {
		return types.Transaction{}, fmt.Errorf("serialize message: %w", err)
	}

	byKey := make(map[common.PublicKey]Signer, len(signers))
	for _, s := range signers {
		byKey[s.PublicKey()] = s
	}

	sigs := make([]types.Signature, len(required))
	for i, key := range required {
		s, ok := byKey[key]
		if !ok {
			if requireAll {
				return types.Transaction{}, fmt.Errorf("%w: %s", errs.ErrMissingSigner, key.ToBase58())
			}
			sigs[i] = make([]byte, 64)
			continue
		}
		sigs[i] = s.Sign(message)
	}
	tx.Signatures = sigs
	return tx, nil
}
