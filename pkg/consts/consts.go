package consts

import "runtime"

const (
	// LamportsPerSignature 每个签名的固定基础费用
	LamportsPerSignature uint64 = 5_000
	// ComputeUnitPriceMicroLamports 计算单元单价（micro-lamports / CU）
	ComputeUnitPriceMicroLamports uint64 = 5
	MicroLamportsPerLamport       uint64 = 1_000_000
)

// CpuCount 表示逻辑 CPU 核心数，用于控制并发任务调度上限
var CpuCount = runtime.NumCPU()
