package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

func TestLoad_ExampleFile(t *testing.T) {
	content, err := os.ReadFile("../../etc/client.yaml")
	require.NoError(t, err)

	var c ClientConfig
	require.NoError(t, conf.LoadFromYamlBytes(content, &c))

	assert.Equal(t, "https://api.devnet.solana.com", c.RpcConf.Endpoint)
	assert.Equal(t, 10*time.Second, c.RpcConf.ToRpcOption().RequestTimeout)
	// 默认每次读取都直接访问节点，缓存需显式开启
	assert.False(t, c.CacheConf.Enabled)
	assert.False(t, c.KafkaProducerConf.Enabled())

	opt := ToLifecycleOption(c.FeeConf, c.ConfirmConf)
	assert.Equal(t, uint64(5000), opt.BaseFeeLamports)
	assert.Equal(t, uint64(5), opt.ComputeUnitPriceMicroLamports)
	assert.Equal(t, 60, opt.ConfirmMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, opt.ConfirmInterval)
}

func TestLoad_Defaults(t *testing.T) {
	content := []byte(`
logger:
  level: debug
rpc:
  endpoint: http://127.0.0.1:8899
fee: {}
confirm:
  exponential: true
kafka_producer:
  brokers: 127.0.0.1:9092
`)
	var c ClientConfig
	require.NoError(t, conf.LoadFromYamlBytes(content, &c))

	assert.Equal(t, "console", c.LogConf.Format)
	assert.Equal(t, "debug", c.LogConf.Level)
	assert.Equal(t, 10000, c.RpcConf.RequestTimeoutMs)
	assert.Equal(t, uint64(5000), c.FeeConf.BaseFeeLamports)
	assert.Equal(t, 60, c.ConfirmConf.MaxAttempts)
	assert.True(t, c.ConfirmConf.Exponential)
	assert.Equal(t, 5*time.Second, ToLifecycleOption(c.FeeConf, c.ConfirmConf).MaxInterval)

	assert.True(t, c.KafkaProducerConf.Enabled())
	kafkaOpt := c.KafkaProducerConf.ToKafkaOption()
	require.Len(t, kafkaOpt.Topics, 1)
	assert.Equal(t, "tx-lifecycle", kafkaOpt.Topics[0].Topic)
	assert.Equal(t, 1, kafkaOpt.Topics[0].Partitions)
	assert.Equal(t, 5*time.Second, c.KafkaProducerConf.ToSinkOption().SendTimeout)
}

func TestLoad_MissingEndpoint(t *testing.T) {
	content := []byte(`
logger:
  level: info
rpc:
  request_timeout_ms: 1000
fee: {}
confirm: {}
`)
	var c ClientConfig
	assert.Error(t, conf.LoadFromYamlBytes(content, &c))
}
