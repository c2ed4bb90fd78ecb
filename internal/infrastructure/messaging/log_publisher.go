package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/calculator/internal/domain/event"
)

// LogEventPublisher implements port.EventPublisher by logging events. It is
// used when no Kafka brokers are configured.
type LogEventPublisher struct {
	topic  string
	logger *slog.Logger
}

func NewLogEventPublisher(topic string, logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{
		topic:  topic,
		logger: logger,
	}
}

// Publish serialises each event and logs it at info level.
func (p *LogEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload", json.RawMessage(payload),
		)
	}
	return nil
}
