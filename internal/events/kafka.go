package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/metrics"
)

// Producer 消息生产者
type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
	Close() error
}

// KafkaProducer 基于 kafka-go Writer 的异步生产者
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer 创建生产者，写入失败在回调中记录
func NewKafkaProducer(brokers []string, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				metrics.EventsPublishFailedTotal.WithLabelValues("kafka").Add(float64(len(messages)))
				logger.Error("Failed to deliver events to kafka",
					zap.Error(err),
					zap.Int("messages", len(messages)),
					zap.String("topic", topic))
			}
		},
	}
	return &KafkaProducer{writer: writer}
}

// SendMessage 实现 Producer
func (p *KafkaProducer) SendMessage(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// Close 刷新缓冲并关闭连接
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// KafkaPublisher 把事件序列化为 JSON 后写入 Kafka
type KafkaPublisher struct {
	producer Producer
	logger   *zap.Logger
}

// NewKafkaPublisher 创建 KafkaPublisher
func NewKafkaPublisher(producer Producer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// Publish 实现 Publisher
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if err := p.publish(ctx, event); err != nil {
		metrics.EventsPublishFailedTotal.WithLabelValues("kafka").Inc()
		p.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", event.Type),
			zap.String("key", event.Key))
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues("kafka").Inc()
}

func (p *KafkaPublisher) publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.producer.SendMessage(ctx, []byte(event.Key), value); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Close 关闭底层生产者
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
