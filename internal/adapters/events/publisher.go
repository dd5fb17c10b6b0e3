package events

import (
	"context"
	"log/slog"
)

// LoggingPublisher stands in for the broker when no brokers are configured.
// It only records the publish; nothing is delivered anywhere.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	p.logger.InfoContext(ctx, "event published",
		"module", "events.publisher",
		"layer", "adapter",
		"operation", "publish",
		"outcome", "success",
		"topic", topic,
		"key", key,
		"payload_bytes", len(payload),
	)
	return nil
}
