package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"anchor-client-sol/pkg/types"
)

// parseSeed 支持 pubkey:<base58> / hex:<hex> / u8:<n> / u16:<n> / u32:<n> / u64:<n>，其余按原始字符串处理。
// 整数按小端序编码，与链上程序 to_le_bytes 一致。
func parseSeed(s string) ([]byte, error) {
	kind, val, ok := strings.Cut(s, ":")
	if !ok {
		return []byte(s), nil
	}
	switch kind {
	case "pubkey":
		pk, err := types.TryPubkeyFromBase58(val)
		if err != nil {
			return nil, err
		}
		return pk.Bytes(), nil
	case "hex":
		return hex.DecodeString(val)
	case "u8", "u16", "u32", "u64":
		bits, _ := strconv.Atoi(kind[1:])
		n, err := strconv.ParseUint(val, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("invalid %s seed %q: %w", kind, val, err)
		}
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, n)
		return buf[:bits/8], nil
	case "str":
		return []byte(val), nil
	default:
		return []byte(s), nil
	}
}

func parseSeeds(args []string) ([][]byte, error) {
	seeds := make([][]byte, 0, len(args))
	for _, a := range args {
		seed, err := parseSeed(a)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}
