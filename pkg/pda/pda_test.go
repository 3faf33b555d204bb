package pda

import (
	"bytes"
	"testing"

	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testProgram = common.PublicKeyFromString("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M4uBEwF6P")
	testWallet  = common.PublicKeyFromString("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testMint    = common.PublicKeyFromString("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func TestFindProgramAddress_MatchesSdk(t *testing.T) {
	seedSets := [][][]byte{
		{[]byte("global")},
		{[]byte("bonding-curve"), testMint.Bytes()},
		{[]byte("vault"), testWallet.Bytes(), {1, 2, 3}},
		{},
	}
	for _, seeds := range seedSets {
		want, wantBump, err := common.FindProgramAddress(seeds, testProgram)
		require.NoError(t, err)

		got, bump, err := FindProgramAddress(seeds, testProgram)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, wantBump, bump)
		assert.False(t, IsOnCurve(got))
	}
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	seeds := [][]byte{[]byte("profile"), testWallet.Bytes()}
	a1, b1, err := FindProgramAddress(seeds, testProgram)
	require.NoError(t, err)
	a2, b2, err := FindProgramAddress(seeds, testProgram)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	other, _, err := FindProgramAddress([][]byte{[]byte("profile"), testMint.Bytes()}, testProgram)
	require.NoError(t, err)
	assert.NotEqual(t, a1, other)
}

func TestCreateProgramAddress_WithFoundBump(t *testing.T) {
	seeds := [][]byte{[]byte("global")}
	addr, bump, err := FindProgramAddress(seeds, testProgram)
	require.NoError(t, err)

	got, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgram)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestCreateProgramAddress_InvalidSeeds(t *testing.T) {
	_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, 33)}, testProgram)
	assert.ErrorIs(t, err, errs.ErrInvalidSeeds)

	tooMany := make([][]byte, MaxSeeds+1)
	for i := range tooMany {
		tooMany[i] = []byte{byte(i)}
	}
	_, err = CreateProgramAddress(tooMany, testProgram)
	assert.ErrorIs(t, err, errs.ErrInvalidSeeds)

	// 16 个种子加上 bump 超出上限
	_, _, err = FindProgramAddress(tooMany[:MaxSeeds], testProgram)
	assert.ErrorIs(t, err, errs.ErrInvalidSeeds)
}

func TestFindAssociatedTokenAddress_MatchesSdk(t *testing.T) {
	want, wantBump, err := common.FindAssociatedTokenAddress(testWallet, testMint)
	require.NoError(t, err)

	got, bump, err := FindAssociatedTokenAddress(testWallet, testMint, consts.TokenProgram)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantBump, bump)

	token2022, _, err := FindAssociatedTokenAddress(testWallet, testMint, consts.TokenProgram2022)
	require.NoError(t, err)
	assert.NotEqual(t, got, token2022)
}

func TestIsOnCurve(t *testing.T) {
	// 普通钱包地址是合法的 ed25519 公钥
	assert.True(t, IsOnCurve(types.NewAccount().PublicKey))
}
