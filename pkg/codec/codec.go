// Package codec 负责 Anchor 指令数据的编码与账户数据的解码。
//
// 数据格式：8 字节 discriminator ++ Borsh 位置编码的字段，无字段标签。
package codec

import (
	"fmt"
	"reflect"

	"anchor-client-sol/pkg/discriminator"
	"anchor-client-sol/pkg/errs"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
)

// Tagged 带有账户类型标签的目标类型
type Tagged interface {
	Discriminator() discriminator.Discriminator
}

// FixedLength 声明账户体按固定分配长度读取，超出部分视为预留空间被忽略。
// 未实现该接口的类型要求正好消费完全部剩余字节。
type FixedLength interface {
	AllocatedLen() int
}

// EncodeArgs 生成指令数据：Instruction(selector) ++ borsh(args)
func EncodeArgs(selector string, args any) ([]byte, error) {
	disc := discriminator.Instruction(selector)
	if args == nil {
		return disc.Bytes(), nil
	}
	body, err := serialize(args)
	if err != nil {
		return nil, fmt.Errorf("encode args for %s: %w", selector, err)
	}
	data := make([]byte, 0, discriminator.Size+len(body))
	data = append(data, disc[:]...)
	return append(data, body...), nil
}

// EncodeInstruction 构造指令，不校验 metas 的一致性。
// 依赖自动推断 payer 的调用方需要把付费账户放在 signer+writable 的 meta 中。
func EncodeInstruction(program common.PublicKey, selector string, args any, metas []types.AccountMeta) (types.Instruction, error) {
	data, err := EncodeArgs(selector, args)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		ProgramID: program,
		Accounts:  metas,
		Data:      data,
	}, nil
}

// EncodeAccount 生成账户数据：v.Discriminator() ++ borsh(v)
func EncodeAccount(v Tagged) ([]byte, error) {
	body, err := serialize(v)
	if err != nil {
		return nil, fmt.Errorf("encode account: %w", err)
	}
	if fl, ok := v.(FixedLength); ok && fl.AllocatedLen() > len(body) {
		padded := make([]byte, fl.AllocatedLen())
		copy(padded, body)
		body = padded
	}
	disc := v.Discriminator()
	return append(disc.Bytes(), body...), nil
}

// DecodeAccount 校验 discriminator 后把 payload 解码到 out（必须是指针）
func DecodeAccount(payload []byte, out Tagged) error {
	if len(payload) < discriminator.Size {
		return fmt.Errorf("%w: payload length %d < %d", errs.ErrMalformedAccount, len(payload), discriminator.Size)
	}
	want := out.Discriminator()
	if !want.Matches(payload) {
		return fmt.Errorf("%w: want %s, got %x", errs.ErrTypeMismatch, want, payload[:discriminator.Size])
	}

	body := payload[discriminator.Size:]
	if fl, ok := out.(FixedLength); ok {
		n := fl.AllocatedLen()
		if len(body) < n {
			return fmt.Errorf("%w: body length %d < allocated %d", errs.ErrDeserialization, len(body), n)
		}
		return DecodeBody(body[:n], out)
	}

	if err := DecodeBody(body, out); err != nil {
		return err
	}
	// borsh 不报告剩余字节，这里用重新编码的长度判断是否消费完毕
	consumed, err := serialize(out)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDeserialization, err)
	}
	if len(consumed) != len(body) {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrDeserialization, len(body)-len(consumed))
	}
	return nil
}

// DecodeBody 不做 discriminator 校验，直接 borsh 解码
func DecodeBody(body []byte, out any) (err error) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer, got %T", errs.ErrDeserialization, out)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: borsh panic: %v", errs.ErrDeserialization, r)
		}
	}()
	if err := borsh.Deserialize(out, body); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDeserialization, err)
	}
	return nil
}

// serialize 顶层指针先解引用，避免被 borsh 当作 Option 编码
func serialize(v any) (out []byte, err error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil pointer %T", v)
		}
		rv = rv.Elem()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("borsh panic: %v", r)
		}
	}()
	return borsh.Serialize(rv.Interface())
}
