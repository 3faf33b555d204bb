// Package discriminator 计算 Anchor 风格的 8 字节类型标签。
//
// 指令标签取 sha256("global:<name>") 前 8 字节；账户标签使用独立的
// "account:" 命名空间，两者不会因同名而冲突。
package discriminator

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

const Size = 8

const (
	NamespaceGlobal  = "global"
	NamespaceAccount = "account"
)

// Discriminator 8 字节类型标签
type Discriminator [Size]byte

// Compute 计算 sha256("<namespace>:<name>") 前 8 字节
func Compute(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:Size])
	return d
}

// Instruction 指令选择器标签
func Instruction(name string) Discriminator {
	return Compute(NamespaceGlobal, name)
}

// Account 账户类型标签
func Account(name string) Discriminator {
	return Compute(NamespaceAccount, name)
}

// FromBytes 读取 b 的前 8 字节，长度不足时返回 false
func FromBytes(b []byte) (Discriminator, bool) {
	var d Discriminator
	if len(b) < Size {
		return d, false
	}
	copy(d[:], b[:Size])
	return d, true
}

func (d Discriminator) Bytes() []byte {
	return d[:]
}

// Uint64 按大端读取，与 switch binary.BigEndian.Uint64(data[:8]) 风格的分发表一致
func (d Discriminator) Uint64() uint64 {
	return binary.BigEndian.Uint64(d[:])
}

func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}

func (d Discriminator) Equal(other Discriminator) bool {
	return d == other
}

// Matches 判断 payload 是否以该标签开头
func (d Discriminator) Matches(payload []byte) bool {
	return len(payload) >= Size && bytes.Equal(payload[:Size], d[:])
}
