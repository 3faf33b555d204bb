// Package pda 负责程序派生地址（PDA）的推导与存在性判断。
package pda

import (
	"crypto/sha256"
	"fmt"

	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/errs"

	"filippo.io/edwards25519"
	"github.com/blocto/solana-go-sdk/common"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

// CreateProgramAddress sha256(seeds... ++ program ++ "ProgramDerivedAddress")，结果在曲线上时失败
func CreateProgramAddress(seeds [][]byte, program common.PublicKey) (common.PublicKey, error) {
	if err := validateSeeds(seeds); err != nil {
		return common.PublicKey{}, err
	}
	addr := hashSeeds(seeds, program)
	if IsOnCurve(addr) {
		return common.PublicKey{}, fmt.Errorf("%w: derived address is on curve", errs.ErrInvalidSeeds)
	}
	return addr, nil
}

// FindProgramAddress 从 255 开始递减 bump，返回第一个不在曲线上的地址
func FindProgramAddress(seeds [][]byte, program common.PublicKey) (common.PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bumpSeed := []byte{0}
	withBump[len(seeds)] = bumpSeed

	if err := validateSeeds(withBump); err != nil {
		return common.PublicKey{}, 0, err
	}

	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		addr := hashSeeds(withBump, program)
		if !IsOnCurve(addr) {
			return addr, uint8(bump), nil
		}
	}
	return common.PublicKey{}, 0, fmt.Errorf("%w: program=%s", errs.ErrNoValidBump, program.ToBase58())
}

// FindAssociatedTokenAddress 关联代币账户地址：seeds = [wallet, tokenProgram, mint]
func FindAssociatedTokenAddress(wallet, mint, tokenProgram common.PublicKey) (common.PublicKey, uint8, error) {
	return FindProgramAddress(
		[][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		consts.AssociatedTokenProgram,
	)
}

// IsOnCurve 判断 32 字节是否为合法的 ed25519 点编码
func IsOnCurve(p common.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return fmt.Errorf("%w: %d seeds exceeds %d", errs.ErrInvalidSeeds, len(seeds), MaxSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return fmt.Errorf("%w: seed[%d] length %d exceeds %d", errs.ErrInvalidSeeds, i, len(seed), MaxSeedLength)
		}
	}
	return nil
}

func hashSeeds(seeds [][]byte, program common.PublicKey) common.PublicKey {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write([]byte(pdaMarker))

	var addr common.PublicKey
	copy(addr[:], h.Sum(nil))
	return addr
}
