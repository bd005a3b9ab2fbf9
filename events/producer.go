package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Producer publishes JSON events synchronously.
type Producer struct {
	producer sarama.SyncProducer
	log      zerolog.Logger
}

// NewProducer connects a sync producer to brokers.
func NewProducer(brokers []string, log zerolog.Logger) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewProducerWith(p, log), nil
}

// NewProducerWith wraps an existing sarama producer.
func NewProducerWith(p sarama.SyncProducer, log zerolog.Logger) *Producer {
	return &Producer{producer: p, log: log}
}

// Publish encodes v as JSON and sends it to topic under key.
func (p *Producer) Publish(ctx context.Context, topic, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	p.log.Info().Str("topic", topic).Str("key", key).
		Int32("partition", partition).Int64("offset", offset).
		Msg("📤 Event published")
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
