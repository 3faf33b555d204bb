package config

import (
	"time"

	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/lifecycle"
	"anchor-client-sol/pkg/logger"
	"anchor-client-sol/pkg/mq"
)

type LogConfig struct {
	Format   string `json:"format,default=console" yaml:"format"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional" yaml:"log_dir"`      // 日志目录，为空时只输出到 stdout
	Level    string `json:"level,default=info" yaml:"level"`      // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional" yaml:"compress"`    // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig Solana JSON-RPC 节点配置
type RpcConfig struct {
	Endpoint         string `json:"endpoint" yaml:"endpoint"`                                   // 节点地址，例如 https://api.devnet.solana.com
	RequestTimeoutMs int    `json:"request_timeout_ms,default=10000" yaml:"request_timeout_ms"` // 单次请求超时（毫秒）
}

func (c *RpcConfig) ToRpcOption() chain.RpcOption {
	return chain.RpcOption{
		Endpoint:       c.Endpoint,
		RequestTimeout: time.Duration(c.RequestTimeoutMs) * time.Millisecond,
	}
}

// FeeConfig 费用估算参数
type FeeConfig struct {
	BaseFeeLamports               uint64 `json:"base_fee_lamports,default=5000" yaml:"base_fee_lamports"`                              // 每个签名的基础费用
	ComputeUnitPriceMicroLamports uint64 `json:"compute_unit_price_micro_lamports,default=5" yaml:"compute_unit_price_micro_lamports"` // 计算单元单价
}

// ConfirmConfig 确认轮询参数
type ConfirmConfig struct {
	MaxAttempts   int  `json:"max_attempts,default=60" yaml:"max_attempts"`         // 最大轮询次数
	IntervalMs    int  `json:"interval_ms,default=500" yaml:"interval_ms"`          // 轮询间隔（毫秒）
	Exponential   bool `json:"exponential,optional" yaml:"exponential"`             // 是否使用指数退避
	MaxIntervalMs int  `json:"max_interval_ms,default=5000" yaml:"max_interval_ms"` // 指数退避最大间隔（毫秒）
}

// ToLifecycleOption 合并费用与确认参数
func ToLifecycleOption(fee FeeConfig, confirm ConfirmConfig) lifecycle.Option {
	return lifecycle.Option{
		BaseFeeLamports:               fee.BaseFeeLamports,
		ComputeUnitPriceMicroLamports: fee.ComputeUnitPriceMicroLamports,
		ConfirmMaxAttempts:            confirm.MaxAttempts,
		ConfirmInterval:               time.Duration(confirm.IntervalMs) * time.Millisecond,
		ExponentialBackoff:            confirm.Exponential,
		MaxInterval:                   time.Duration(confirm.MaxIntervalMs) * time.Millisecond,
	}
}

// CacheConfig 账户快照缓存：进程内 LRU + 可选 Redis 二级缓存
type CacheConfig struct {
	Enabled  bool `json:"enabled,optional" yaml:"enabled"`
	LRUSize  int  `json:"lru_size,default=4096" yaml:"lru_size"`     // LRU 容量
	LRUTTLMs int  `json:"lru_ttl_ms,default=2000" yaml:"lru_ttl_ms"` // LRU 过期时间（毫秒）

	RedisAddr     string `json:"redis_addr,optional" yaml:"redis_addr"` // 为空时不启用 Redis
	RedisPassword string `json:"redis_password,optional" yaml:"redis_password"`
	RedisDB       int    `json:"redis_db,optional" yaml:"redis_db"`
	RedisTTLMs    int    `json:"redis_ttl_ms,default=30000" yaml:"redis_ttl_ms"` // Redis 过期时间（毫秒）
}

func (c *CacheConfig) LRUTTL() time.Duration {
	return time.Duration(c.LRUTTLMs) * time.Millisecond
}

func (c *CacheConfig) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLMs) * time.Millisecond
}

// KafkaProducerConfig 交易状态事件的 Kafka 配置，Brokers 为空时不发布
type KafkaProducerConfig struct {
	Brokers       string `json:"brokers,optional" yaml:"brokers"`                     // 多个用英文逗号分隔
	BatchSize     int    `json:"batch_size,optional" yaml:"batch_size"`               // 批处理大小（字节）
	LingerMs      int    `json:"linger_ms,default=5" yaml:"linger_ms"`                // 批处理最大延迟（毫秒）
	Topic         string `json:"topic,default=tx-lifecycle" yaml:"topic"`             // 状态事件 topic
	Partitions    int    `json:"partitions,default=1" yaml:"partitions"`              // topic 分区数
	SendTimeoutMs int    `json:"send_timeout_ms,default=5000" yaml:"send_timeout_ms"` // 单条事件等待 ack 的超时（毫秒）
}

func (c *KafkaProducerConfig) Enabled() bool {
	return c.Brokers != ""
}

func (c *KafkaProducerConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics:    []mq.TopicSpec{{Topic: c.Topic, Partitions: c.Partitions}},
	}
}

func (c *KafkaProducerConfig) ToSinkOption() mq.KafkaSinkOption {
	return mq.KafkaSinkOption{
		Topic:       c.Topic,
		Partitions:  int32(c.Partitions),
		SendTimeout: time.Duration(c.SendTimeoutMs) * time.Millisecond,
	}
}

// ClientConfig 客户端主配置
type ClientConfig struct {
	LogConf           LogConfig           `json:"logger" yaml:"logger"`
	RpcConf           RpcConfig           `json:"rpc" yaml:"rpc"`
	FeeConf           FeeConfig           `json:"fee" yaml:"fee"`
	ConfirmConf       ConfirmConfig       `json:"confirm" yaml:"confirm"`
	CacheConf         CacheConfig         `json:"cache,optional" yaml:"cache"`
	KafkaProducerConf KafkaProducerConfig `json:"kafka_producer,optional" yaml:"kafka_producer"`
}
