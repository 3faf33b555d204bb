package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const SignatureLength = 64

// Signature 交易签名，链上以 base58 字符串作为交易 ID
type Signature [SignatureLength]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, fmt.Errorf("invalid signature length: got %d, want %d", len(b), SignatureLength)
	}
	copy(s[:], b)
	return s, nil
}

func SignatureFromBase58(str string) (Signature, error) {
	data, err := base58.Decode(str)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to decode base58 signature %q: %w", str, err)
	}
	return SignatureFromBytes(data)
}
