package mq

import (
	"context"
	"fmt"
	"time"

	"anchor-client-sol/pkg/lifecycle"
	"anchor-client-sol/pkg/types"
	"anchor-client-sol/pkg/utils"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/zeromicro/go-zero/core/jsonx"
)

const defaultSendTimeout = 5 * time.Second

type KafkaSinkOption struct {
	Topic       string
	Partitions  int32
	SendTimeout time.Duration
}

// KafkaSink 把交易状态迁移以 JSON 发布到 Kafka。
// 同一签名的事件落在同一分区，消费端可以按序处理。
type KafkaSink struct {
	producer *kafka.Producer
	opt      KafkaSinkOption
}

func NewKafkaSink(producer *kafka.Producer, opt KafkaSinkOption) *KafkaSink {
	if opt.SendTimeout <= 0 {
		opt.SendTimeout = defaultSendTimeout
	}
	return &KafkaSink{producer: producer, opt: opt}
}

func (s *KafkaSink) Publish(ctx context.Context, ev lifecycle.Event) error {
	job, err := BuildEventJob(s.opt.Topic, s.opt.Partitions, ev)
	if err != nil {
		return err
	}
	_, failed := SendKafkaJobs(ctx, s.producer, []*KafkaJob{job}, s.opt.SendTimeout)
	if len(failed) > 0 {
		return fmt.Errorf("publish %s/%s: %w", ev.Signature, ev.State, failed[0].Err)
	}
	return nil
}

// BuildEventJob 按签名字节选择分区；签名无法解析时退化为字符串字节
func BuildEventJob(topic string, partitions int32, ev lifecycle.Event) (*KafkaJob, error) {
	value, err := jsonx.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	key := []byte(ev.Signature)
	if sig, err := types.SignatureFromBase58(ev.Signature); err == nil {
		key = sig[:]
	}
	return &KafkaJob{
		Topic:     topic,
		Partition: utils.KeyPartition(key, partitions),
		Key:       []byte(ev.Signature),
		Value:     value,
	}, nil
}

var _ lifecycle.EventSink = (*KafkaSink)(nil)
