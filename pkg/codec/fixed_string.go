package codec

import "encoding/binary"

const FixedString32Size = 4 + 32

// FixedString32 定长字符串：u32 长度 + 32 字节零填充内容，共 36 字节。
// 编码宽度固定，后续字段的偏移量因此可以静态计算。
type FixedString32 struct {
	Len  uint32
	Data [32]byte
}

// NewFixedString32 超过 32 字节的部分被截断
func NewFixedString32(s string) FixedString32 {
	var f FixedString32
	n := copy(f.Data[:], s)
	f.Len = uint32(n)
	return f
}

func (f FixedString32) String() string {
	n := int(f.Len)
	if n > len(f.Data) {
		n = len(f.Data)
	}
	return string(f.Data[:n])
}

// Bytes 返回该字段的 36 字节编码，用于 memcmp 过滤
func (f FixedString32) Bytes() []byte {
	out := make([]byte, FixedString32Size)
	binary.LittleEndian.PutUint32(out, f.Len)
	copy(out[4:], f.Data[:])
	return out
}
