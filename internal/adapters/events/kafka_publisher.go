package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/viralforge/product-event-service/internal/domain"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher opens a writer against the given brokers. The writer
// waits for all in-sync replicas to acknowledge each message; delivery
// ordering is left to the caller, which serializes its publishes.
func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			MaxAttempts:  1,
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	// Dial and transport failures surface before the broker ever saw the
	// message.
	return fmt.Errorf("%w: %v", domain.ErrBrokerUnavailable, err)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
