package schema

import (
	"encoding/json"
	"testing"

	"anchor-client-sol/pkg/codec"
	"anchor-client-sol/pkg/discriminator"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOwner = common.PublicKeyFromString("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")

	listingSchema = Define(discriminator.Account("Listing"),
		Pubkey("seller"),
		U64("price"),
		FixedString("title", 32),
		Bool("active"),
		Skip(7),
		I64("created_at"),
		Variable("tags"),
		U8("after_tags"),
	)
)

func TestLayout_Offsets(t *testing.T) {
	tests := []struct {
		name string
		want uint64
	}{
		{"seller", 8},
		{"price", 40},
		{"title", 48},
		{"active", 84},
		{"created_at", 92},
	}
	for _, tt := range tests {
		off, ok := listingSchema.FieldOffset(tt.name)
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.want, off, tt.name)
	}

	_, ok := listingSchema.FieldOffset("tags")
	assert.False(t, ok)
	_, ok = listingSchema.FieldOffset("after_tags")
	assert.False(t, ok)
	_, ok = listingSchema.FieldOffset("nope")
	assert.False(t, ok)

	_, static := listingSchema.StaticSize()
	assert.False(t, static)
	assert.Equal(t, []string{"seller", "price", "title", "active", "created_at"}, listingSchema.Fields())
}

func TestLayout_StaticSize(t *testing.T) {
	l := NewLayout(Pubkey("a"), U16("b"), U32("c"))
	size, ok := l.StaticSize()
	assert.True(t, ok)
	assert.Equal(t, 32+2+4, size)
}

func TestSerializeField_Pubkey(t *testing.T) {
	for _, v := range []any{testOwner, &testOwner, [32]byte(testOwner), testOwner.Bytes(), testOwner.ToBase58()} {
		b, ok := listingSchema.SerializeField("seller", v)
		require.True(t, ok, "%T", v)
		assert.Equal(t, testOwner.Bytes(), b)
	}

	_, ok := listingSchema.SerializeField("seller", "not base58 !!")
	assert.False(t, ok)
	_, ok = listingSchema.SerializeField("seller", []byte{1, 2})
	assert.False(t, ok)
}

func TestSerializeField_Integers(t *testing.T) {
	want := []byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}
	for _, v := range []any{uint64(1000), 1000, float64(1000), json.Number("1000"), "1000"} {
		b, ok := listingSchema.SerializeField("price", v)
		require.True(t, ok, "%T", v)
		assert.Equal(t, want, b)
	}

	_, ok := listingSchema.SerializeField("price", -1)
	assert.False(t, ok)
	_, ok = listingSchema.SerializeField("price", 1.5)
	assert.False(t, ok)
	_, ok = listingSchema.SerializeField("price", true)
	assert.False(t, ok)

	b, ok := listingSchema.SerializeField("created_at", int64(-1))
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, b)

	u8 := NewLayout(U8("x"))
	_, ok = u8.SerializeField("x", 256)
	assert.False(t, ok)
	b, ok = u8.SerializeField("x", float64(255))
	require.True(t, ok)
	assert.Equal(t, []byte{255}, b)
}

func TestSerializeField_BoolAndString(t *testing.T) {
	b, ok := listingSchema.SerializeField("active", true)
	require.True(t, ok)
	assert.Equal(t, []byte{1}, b)
	_, ok = listingSchema.SerializeField("active", 1)
	assert.False(t, ok)

	b, ok = listingSchema.SerializeField("title", "gm")
	require.True(t, ok)
	assert.Equal(t, codec.NewFixedString32("gm").Bytes(), b)

	b, ok = listingSchema.SerializeField("title", codec.NewFixedString32("gm"))
	require.True(t, ok)
	assert.Len(t, b, 36)

	_, ok = listingSchema.SerializeField("title", string(make([]byte, 33)))
	assert.False(t, ok)
}

func TestBuildFilters(t *testing.T) {
	filters, err := BuildFilters(listingSchema, []FieldFilter{
		{Name: "seller", Value: testOwner.ToBase58()},
		{Name: "active", Value: true},
	})
	require.NoError(t, err)
	require.Len(t, filters, 3)

	assert.Equal(t, uint64(0), filters[0].Offset)
	assert.Equal(t, discriminator.Account("Listing").Bytes(), filters[0].Bytes)
	assert.Equal(t, uint64(8), filters[1].Offset)
	assert.Equal(t, testOwner.Bytes(), filters[1].Bytes)
	assert.Equal(t, uint64(84), filters[2].Offset)
	assert.Equal(t, []byte{1}, filters[2].Bytes)
}

func TestBuildFilters_OnlyDiscriminator(t *testing.T) {
	filters, err := BuildFilters(listingSchema, nil)
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, uint64(0), filters[0].Offset)
}

func TestBuildFilters_UnknownField(t *testing.T) {
	_, err := BuildFilters(listingSchema, []FieldFilter{{Name: "tags", Value: "x"}})
	assert.ErrorIs(t, err, errs.ErrUnknownField)

	_, err = BuildFilters(listingSchema, []FieldFilter{{Name: "price", Value: "abc"}})
	assert.ErrorIs(t, err, errs.ErrUnknownField)
}
