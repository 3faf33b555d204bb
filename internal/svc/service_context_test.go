package svc

import (
	"testing"

	"anchor-client-sol/internal/config"
	"anchor-client-sol/pkg/chain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.ClientConfig {
	return config.ClientConfig{
		LogConf: config.LogConfig{Format: "console", Level: "error"},
		RpcConf: config.RpcConfig{Endpoint: "http://127.0.0.1:8899", RequestTimeoutMs: 1000},
	}
}

func TestNewServiceContext_NoCache(t *testing.T) {
	ctx, err := NewServiceContext(baseConfig())
	require.NoError(t, err)
	defer ctx.Close()

	assert.Nil(t, ctx.Cache)
	assert.IsType(t, &chain.RpcNetwork{}, ctx.Network)
	assert.Same(t, ctx.Network, ctx.Query.Network())
	assert.Equal(t, 60, ctx.Lifecycle.Option().ConfirmMaxAttempts)
}

func TestNewServiceContext_WithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c := baseConfig()
	c.CacheConf = config.CacheConfig{Enabled: true, LRUSize: 16, LRUTTLMs: 1000, RedisAddr: mr.Addr(), RedisTTLMs: 5000}
	c.ConfirmConf = config.ConfirmConfig{MaxAttempts: 10, IntervalMs: 100}

	ctx, err := NewServiceContext(c)
	require.NoError(t, err)
	defer ctx.Close()

	require.NotNil(t, ctx.Cache)
	assert.Same(t, ctx.Cache, ctx.Network)
	assert.NotNil(t, ctx.rdb)
	assert.Equal(t, 10, ctx.Lifecycle.Option().ConfirmMaxAttempts)
}

func TestNewServiceContext_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := baseConfig()
	c.CacheConf = config.CacheConfig{Enabled: true, LRUSize: 16, RedisAddr: addr}
	_, err := NewServiceContext(c)
	assert.Error(t, err)
}

func TestNewServiceContext_EmptyEndpoint(t *testing.T) {
	c := baseConfig()
	c.RpcConf.Endpoint = ""
	_, err := NewServiceContext(c)
	assert.Error(t, err)
}
