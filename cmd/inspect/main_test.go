package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/pda"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"listing", []byte("listing")},
		{"str:a:b", []byte("a:b")},
		{"hex:0a0b", []byte{0x0a, 0x0b}},
		{"u8:7", []byte{7}},
		{"u16:258", []byte{2, 1}},
		{"u64:1", []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{"pubkey:" + consts.SystemProgramStr, make([]byte, 32)},
	}
	for _, tt := range tests {
		got, err := parseSeed(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"u8:256", "hex:zz", "pubkey:xyz0"} {
		_, err := parseSeed(bad)
		assert.Error(t, err, bad)
	}
}

func TestDiscriminatorCommand(t *testing.T) {
	out := run(t, "discriminator", "buy", "-o", "json")
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "66063d1201daebea", m["hex"])
	assert.Equal(t, "global", m["namespace"])

	out = run(t, "discriminator", "buy", "--account", "-o", "text")
	assert.Contains(t, out, "account")
	assert.NotContains(t, out, "66063d1201daebea")
	discCmd, _, err := rootCmd.Find([]string{"discriminator"})
	require.NoError(t, err)
	require.NoError(t, discCmd.Flags().Set("account", "false"))
}

func TestPdaCommand(t *testing.T) {
	program := common.PublicKeyFromString("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M4uBEwF6P")
	want, bump, err := pda.FindProgramAddress([][]byte{[]byte("global")}, program)
	require.NoError(t, err)

	out := run(t, "pda", program.ToBase58(), "global", "-o", "json")
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, want.ToBase58(), m["address"])
	assert.Equal(t, float64(bump), m["bump"])
}

func TestAtaCommand(t *testing.T) {
	wallet := common.PublicKeyFromString("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	mint := common.PublicKeyFromString("So11111111111111111111111111111111111111112")
	want, _, err := common.FindAssociatedTokenAddress(wallet, mint)
	require.NoError(t, err)

	out := run(t, "ata", wallet.ToBase58(), mint.ToBase58(), "-o", "text")
	assert.Contains(t, out, want.ToBase58())
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: warn
rpc:
  endpoint: http://127.0.0.1:8899
fee: {}
confirm: {}
`), 0o644))

	out := run(t, "config", "-f", path, "-o", "text")
	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "http://127.0.0.1:8899", got["rpc"]["endpoint"])
	assert.Equal(t, 60, got["confirm"]["max_attempts"])
	assert.Equal(t, "warn", got["logger"]["level"])
}
