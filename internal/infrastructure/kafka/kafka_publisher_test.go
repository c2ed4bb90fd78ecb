package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/calculator/internal/domain/event"
	"github.com/bibbank/calculator/internal/domain/model"
	pkgkafka "github.com/bibbank/calculator/pkg/kafka"
)

type fakeProducer struct {
	topic    string
	messages []pkgkafka.Message
	calls    int
	err      error
}

func (f *fakeProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	f.calls++
	f.topic = topic
	f.messages = append(f.messages, messages...)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewEventPublisher(producer, "calculator.events", discardLogger())

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	refused := event.NewCreditRefused("calc-1", string(model.RefusalAgeOutOfRange), "age out of range",
		decimal.NewFromInt(500000), 24, now)

	require.NoError(t, publisher.Publish(context.Background(), refused))

	assert.Equal(t, 1, producer.calls)
	assert.Equal(t, "calculator.events", producer.topic)
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "calc-1", string(msg.Key))
	assert.Equal(t, event.TypeCreditRefused, msg.Headers["event_type"])
	assert.Equal(t, refused.EventID(), msg.Headers["event_id"])
	assert.Equal(t, event.AggregateCreditCalculation, msg.Headers["aggregate_type"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, event.TypeCreditRefused, body["event_type"])
	assert.Equal(t, "calc-1", body["aggregate_id"])
	assert.Equal(t, "500000", body["requested_amount"])
}

func TestEventPublisher_NoEvents(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewEventPublisher(producer, "calculator.events", discardLogger())

	require.NoError(t, publisher.Publish(context.Background()))
	assert.Zero(t, producer.calls)
}

func TestEventPublisher_ProducerError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker unavailable")}
	publisher := NewEventPublisher(producer, "calculator.events", discardLogger())

	evt := event.NewOffersCalculated("calc-2", decimal.NewFromInt(100000), 12, 4,
		decimal.NewFromInt(11), decimal.NewFromInt(15), false, time.Now())

	err := publisher.Publish(context.Background(), evt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculator.events")
	assert.Contains(t, err.Error(), "broker unavailable")
}
