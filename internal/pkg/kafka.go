package pkg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer publishes community events (join, leave, role changes)
// drained from the outbox. Messages are keyed by community id, so the hash
// balancer keeps one community's event stream ordered within a partition.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Send writes one event synchronously; the relayer treats an error as a
// failed delivery and keeps the outbox row for retry bookkeeping.
func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", p.topic, err)
	}
	return nil
}

// MakeKeyFromID renders a community id as a partition key.
func MakeKeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
