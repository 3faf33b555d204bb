package utils

// KeyPartition 按签名或公钥字节选择分区。签名与公钥本身近似均匀分布，
// 取首尾各 2 字节组合即可，无需再做哈希。同一 key 总是落在同一分区。
func KeyPartition(key []byte, partitions int32) int32 {
	n := len(key)
	if partitions <= 1 || n < 4 {
		return 0
	}
	h := uint32(key[0])<<24 | uint32(key[1])<<16 | uint32(key[n-2])<<8 | uint32(key[n-1])
	if partitions&(partitions-1) == 0 {
		return int32(h & uint32(partitions-1)) // 2 的幂次直接掩码
	}
	return int32(h % uint32(partitions))
}
