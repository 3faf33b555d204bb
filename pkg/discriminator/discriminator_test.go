package discriminator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		want uint64
	}{
		{"initialize", 0xafaf6d1f0d989bed},
		{"create", 0x181ec828051c0777},
		{"buy", 0x66063d1201daebea},
		{"sell", 0x33e685a4017f83ad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Instruction(tt.name)
			assert.Equal(t, tt.want, d.Uint64())
		})
	}
}

func TestInstruction_InitializeBytes(t *testing.T) {
	want := Discriminator{0xaf, 0xaf, 0x6d, 0x1f, 0x0d, 0x98, 0x9b, 0xed}
	assert.Equal(t, want, Instruction("initialize"))
	assert.Equal(t, "afaf6d1f0d989bed", Instruction("initialize").String())
}

func TestInstruction_Stable(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Instruction("swap"), Instruction("swap"))
	}
}

func TestInstruction_DistinctNames(t *testing.T) {
	names := []string{"initialize", "create", "buy", "sell", "swap", "deposit", "withdraw", "close", "Initialize"}
	seen := make(map[Discriminator]string, len(names))
	for _, n := range names {
		d := Instruction(n)
		if prev, ok := seen[d]; ok {
			t.Fatalf("discriminator collision: %s vs %s", prev, n)
		}
		seen[d] = n
	}
}

func TestAccount_SeparateNamespace(t *testing.T) {
	assert.NotEqual(t, Instruction("Vault"), Account("Vault"))
	assert.Equal(t, Compute(NamespaceAccount, "Vault"), Account("Vault"))
}

func TestFromBytes(t *testing.T) {
	d := Instruction("buy")
	payload := append(d.Bytes(), 1, 2, 3)

	got, ok := FromBytes(payload)
	assert.True(t, ok)
	assert.True(t, got.Equal(d))
	assert.True(t, d.Matches(payload))

	_, ok = FromBytes([]byte{1, 2, 3})
	assert.False(t, ok)
	assert.False(t, d.Matches([]byte{1, 2, 3}))
}
