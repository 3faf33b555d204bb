// Package schema 描述账户类型的字段布局，用于在服务端按字段值构造 memcmp 过滤条件。
//
// 每个账户类型实现一次 AccountSchema，类型与布局在编译期绑定，不存在全局注册表。
package schema

import (
	"fmt"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/discriminator"
	"anchor-client-sol/pkg/errs"
)

// AccountSchema 账户类型的过滤能力
type AccountSchema interface {
	Discriminator() discriminator.Discriminator
	// FieldOffset 字段在账户数据中的字节偏移（含 8 字节 discriminator），不可过滤时返回 false
	FieldOffset(name string) (uint64, bool)
	// SerializeField 把字段值编码为链上字节，值类型不匹配时返回 false
	SerializeField(name string, value any) ([]byte, bool)
}

// FieldFilter 字段等值过滤
type FieldFilter struct {
	Name  string
	Value any
}

// BuildFilters 第一个条件固定为 offset 0 的 discriminator，其后每个字段一个等值条件
func BuildFilters(s AccountSchema, filters []FieldFilter) ([]chain.MemcmpFilter, error) {
	disc := s.Discriminator()
	out := make([]chain.MemcmpFilter, 0, len(filters)+1)
	out = append(out, chain.MemcmpFilter{Offset: 0, Bytes: disc.Bytes()})

	for _, f := range filters {
		offset, ok := s.FieldOffset(f.Name)
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not filterable", errs.ErrUnknownField, f.Name)
		}
		value, ok := s.SerializeField(f.Name, f.Value)
		if !ok {
			return nil, fmt.Errorf("%w: field %q cannot serialize %T", errs.ErrUnknownField, f.Name, f.Value)
		}
		out = append(out, chain.MemcmpFilter{Offset: offset, Bytes: value})
	}
	return out, nil
}

// Definition 把 discriminator 与 Layout 组合成 AccountSchema，账户类型可直接委托给它
type Definition struct {
	*Layout
	Tag discriminator.Discriminator
}

func Define(tag discriminator.Discriminator, fields ...Field) Definition {
	return Definition{Layout: NewLayout(fields...), Tag: tag}
}

func (d Definition) Discriminator() discriminator.Discriminator {
	return d.Tag
}
