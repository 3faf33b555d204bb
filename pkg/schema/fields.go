package schema

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"

	"anchor-client-sol/pkg/codec"
	"anchor-client-sol/pkg/types"

	"github.com/blocto/solana-go-sdk/common"
)

func Pubkey(name string) Field {
	return Field{Name: name, Width: types.PubkeyLength, encode: encodePubkey}
}

func U8(name string) Field {
	return Field{Name: name, Width: 1, encode: func(v any) ([]byte, bool) {
		n, ok := toUint(v, math.MaxUint8)
		return []byte{uint8(n)}, ok
	}}
}

func U16(name string) Field {
	return Field{Name: name, Width: 2, encode: func(v any) ([]byte, bool) {
		n, ok := toUint(v, math.MaxUint16)
		return binary.LittleEndian.AppendUint16(nil, uint16(n)), ok
	}}
}

func U32(name string) Field {
	return Field{Name: name, Width: 4, encode: func(v any) ([]byte, bool) {
		n, ok := toUint(v, math.MaxUint32)
		return binary.LittleEndian.AppendUint32(nil, uint32(n)), ok
	}}
}

func U64(name string) Field {
	return Field{Name: name, Width: 8, encode: func(v any) ([]byte, bool) {
		n, ok := toUint(v, math.MaxUint64)
		return binary.LittleEndian.AppendUint64(nil, n), ok
	}}
}

func I64(name string) Field {
	return Field{Name: name, Width: 8, encode: func(v any) ([]byte, bool) {
		n, ok := toInt(v)
		return binary.LittleEndian.AppendUint64(nil, uint64(n)), ok
	}}
}

func Bool(name string) Field {
	return Field{Name: name, Width: 1, encode: func(v any) ([]byte, bool) {
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		if b {
			return []byte{1}, true
		}
		return []byte{0}, true
	}}
}

// FixedString u32 长度 + size 字节零填充内容
func FixedString(name string, size int) Field {
	return Field{Name: name, Width: 4 + size, encode: func(v any) ([]byte, bool) {
		var s string
		switch x := v.(type) {
		case string:
			s = x
		case codec.FixedString32:
			s = x.String()
		case *codec.FixedString32:
			s = x.String()
		default:
			return nil, false
		}
		if len(s) > size {
			return nil, false
		}
		out := make([]byte, 4+size)
		binary.LittleEndian.PutUint32(out, uint32(len(s)))
		copy(out[4:], s)
		return out, true
	}}
}

// Skip 占位字段，不可过滤
func Skip(width int) Field {
	return Field{Width: width}
}

// Variable 变长字段（Vec / String / Option），自身及之后的字段都不可过滤
func Variable(name string) Field {
	return Field{Name: name, Width: variableWidth}
}

func encodePubkey(v any) ([]byte, bool) {
	switch x := v.(type) {
	case common.PublicKey:
		return x.Bytes(), true
	case *common.PublicKey:
		if x == nil {
			return nil, false
		}
		return x.Bytes(), true
	case [32]byte:
		return x[:], true
	case []byte:
		if len(x) != types.PubkeyLength {
			return nil, false
		}
		return x, true
	case string:
		pk, err := types.TryPubkeyFromBase58(x)
		if err != nil {
			return nil, false
		}
		return pk.Bytes(), true
	default:
		return nil, false
	}
}

// toUint 接受 Go 整数类型以及 JSON 解码得到的 float64 / json.Number / 十进制字符串
func toUint(v any, limit uint64) (uint64, bool) {
	var n uint64
	switch x := v.(type) {
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	case uint:
		n = uint64(x)
	case int, int8, int16, int32, int64:
		i, _ := toInt(x)
		if i < 0 {
			return 0, false
		}
		n = uint64(i)
	case float64:
		if x < 0 || x != math.Trunc(x) || x >= math.MaxUint64 {
			return 0, false
		}
		n = uint64(x)
	case json.Number:
		u, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		n = u
	case string:
		u, err := strconv.ParseUint(x, 10, 64)
		if err != nil {
			return 0, false
		}
		n = u
	default:
		return 0, false
	}
	return n, n <= limit
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
