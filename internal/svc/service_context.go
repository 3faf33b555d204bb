package svc

import (
	"context"

	"anchor-client-sol/internal/config"
	"anchor-client-sol/pkg/chain"
	"anchor-client-sol/pkg/lifecycle"
	"anchor-client-sol/pkg/logger"
	"anchor-client-sol/pkg/mq"
	"anchor-client-sol/pkg/query"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/redis/go-redis/v9"
)

// ServiceContext 客户端运行所需的全部资源
type ServiceContext struct {
	Config    config.ClientConfig
	Network   chain.Network
	Cache     *chain.CachedNetwork // 未启用缓存时为 nil
	Query     *query.Engine
	Lifecycle *lifecycle.Manager

	rdb      *redis.Client
	producer *kafka.Producer
}

// NewServiceContext 按配置初始化日志、RPC、缓存、查询引擎与生命周期管理器
func NewServiceContext(c config.ClientConfig) (*ServiceContext, error) {
	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		return nil, err
	}

	rpcNetwork, err := chain.NewRpcNetwork(c.RpcConf.ToRpcOption())
	if err != nil {
		logger.Errorf("[svc] RPC 初始化失败: %v", err)
		return nil, err
	}
	ctx := &ServiceContext{Config: c, Network: rpcNetwork}

	// 1. 账户快照缓存
	if c.CacheConf.Enabled {
		if err := ctx.initCache(rpcNetwork); err != nil {
			ctx.Close()
			return nil, err
		}
	}

	// 2. 状态事件发布
	var sink lifecycle.EventSink
	if c.KafkaProducerConf.Enabled() {
		producer, err := mq.NewKafkaProducer(c.KafkaProducerConf.ToKafkaOption())
		if err != nil {
			logger.Errorf("[svc] Kafka producer 初始化失败: %v", err)
			ctx.Close()
			return nil, err
		}
		ctx.producer = producer
		sink = mq.NewKafkaSink(producer, c.KafkaProducerConf.ToSinkOption())
	}

	ctx.Query = query.NewEngine(ctx.Network)
	ctx.Lifecycle = lifecycle.NewManager(ctx.Network, config.ToLifecycleOption(c.FeeConf, c.ConfirmConf), sink)

	logger.Infof("[svc] 服务上下文初始化完成: endpoint=%s, cache=%v, kafka=%v",
		c.RpcConf.Endpoint, c.CacheConf.Enabled, c.KafkaProducerConf.Enabled())
	return ctx, nil
}

func (ctx *ServiceContext) initCache(inner chain.Network) error {
	c := ctx.Config.CacheConf
	tiers := chain.TieredStore{chain.NewLRUStore(c.LRUSize, c.LRUTTL())}

	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			logger.Errorf("[svc] Redis 连接失败: addr=%s, err=%v", c.RedisAddr, err)
			return err
		}
		ctx.rdb = rdb
		tiers = append(tiers, chain.NewRedisStore(rdb, c.RedisTTL()))
	}

	ctx.Cache = chain.NewCachedNetwork(inner, tiers)
	ctx.Network = ctx.Cache
	return nil
}

// Close 释放外部连接并刷新日志
func (ctx *ServiceContext) Close() {
	if ctx.producer != nil {
		ctx.producer.Flush(3000)
		ctx.producer.Close()
	}
	if ctx.rdb != nil {
		_ = ctx.rdb.Close()
	}
	logger.Sync()
}
