package consts

import (
	"anchor-client-sol/pkg/types"

	"github.com/blocto/solana-go-sdk/common"
)

// 公钥形式的地址常量，用于交易构建、PDA 推导等场景。
var (
	// Programs
	SystemProgram          common.PublicKey
	TokenProgram           common.PublicKey
	TokenProgram2022       common.PublicKey
	AssociatedTokenProgram common.PublicKey
	TokenMetaProgram       common.PublicKey
	ComputeBudgetProgram   common.PublicKey
	MemoProgram            common.PublicKey

	// Sysvars
	SysvarRent common.PublicKey
)

// init 自动将 base58 字符串地址转换为 common.PublicKey
func init() {
	SystemProgram = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022 = types.PubkeyFromBase58(TokenProgram2022Str)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)
	TokenMetaProgram = types.PubkeyFromBase58(TokenMetaProgramStr)
	ComputeBudgetProgram = types.PubkeyFromBase58(ComputeBudgetProgramStr)
	MemoProgram = types.PubkeyFromBase58(MemoProgramStr)

	SysvarRent = types.PubkeyFromBase58(SysvarRentStr)
}
