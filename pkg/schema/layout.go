package schema

import (
	"anchor-client-sol/pkg/discriminator"
)

const variableWidth = -1

// Field 布局中的一个字段
type Field struct {
	Name   string
	Width  int // 字节宽度，variableWidth 表示变长
	encode func(v any) ([]byte, bool)
}

// Layout 有序字段列表。偏移量从 8 开始按字段宽度累加；
// 变长字段及其后的字段偏移不确定，不可过滤。
type Layout struct {
	fields  []Field
	offsets map[string]uint64
	byName  map[string]Field
	size    int
	dynamic bool
}

func NewLayout(fields ...Field) *Layout {
	l := &Layout{
		fields:  fields,
		offsets: make(map[string]uint64, len(fields)),
		byName:  make(map[string]Field, len(fields)),
	}
	offset := discriminator.Size
	for _, f := range fields {
		if f.Width == variableWidth {
			l.dynamic = true
		}
		if !l.dynamic && f.Name != "" && f.encode != nil {
			l.offsets[f.Name] = uint64(offset)
			l.byName[f.Name] = f
		}
		if !l.dynamic {
			offset += f.Width
		}
	}
	l.size = offset - discriminator.Size
	return l
}

func (l *Layout) FieldOffset(name string) (uint64, bool) {
	off, ok := l.offsets[name]
	return off, ok
}

func (l *Layout) SerializeField(name string, value any) ([]byte, bool) {
	f, ok := l.byName[name]
	if !ok {
		return nil, false
	}
	b, ok := f.encode(value)
	if !ok || len(b) != f.Width {
		return nil, false
	}
	return b, true
}

// StaticSize 不含 discriminator 的账户体长度；存在变长字段时返回 false
func (l *Layout) StaticSize() (int, bool) {
	return l.size, !l.dynamic
}

// Fields 可过滤字段名，按布局顺序
func (l *Layout) Fields() []string {
	names := make([]string, 0, len(l.byName))
	for _, f := range l.fields {
		if _, ok := l.byName[f.Name]; ok {
			names = append(names, f.Name)
		}
	}
	return names
}
