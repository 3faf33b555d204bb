package txbuilder

import (
	"anchor-client-sol/pkg/consts"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
)

const (
	computeBudgetSetLimit = 2
	computeBudgetSetPrice = 3
)

type setComputeUnitLimit struct {
	Instruction uint8
	Units       uint32
}

type setComputeUnitPrice struct {
	Instruction   uint8
	MicroLamports uint64
}

// ComputeUnitLimit 设置交易的计算单元上限
func ComputeUnitLimit(units uint32) types.Instruction {
	data, _ := borsh.Serialize(setComputeUnitLimit{Instruction: computeBudgetSetLimit, Units: units})
	return types.Instruction{ProgramID: consts.ComputeBudgetProgram, Data: data}
}

// ComputeUnitPrice 设置计算单元单价（micro-lamports）
func ComputeUnitPrice(microLamports uint64) types.Instruction {
	data, _ := borsh.Serialize(setComputeUnitPrice{Instruction: computeBudgetSetPrice, MicroLamports: microLamports})
	return types.Instruction{ProgramID: consts.ComputeBudgetProgram, Data: data}
}
