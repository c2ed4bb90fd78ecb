package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/calculator/internal/domain/event"
)

func TestLogEventPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	publisher := NewLogEventPublisher("calculator.events", logger)

	evt := event.NewOffersCalculated("calc-9", decimal.NewFromInt(100000), 12, 4,
		decimal.NewFromInt(11), decimal.NewFromInt(15), true, time.Now())

	require.NoError(t, publisher.Publish(context.Background(), evt))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "domain event", line["msg"])
	assert.Equal(t, event.TypeOffersCalculated, line["event_type"])
	assert.Equal(t, "calc-9", line["aggregate_id"])
	assert.Equal(t, "calculator.events", line["topic"])

	payload, ok := line["payload"].(map[string]any)
	require.True(t, ok, "payload is logged as nested JSON")
	assert.Equal(t, float64(4), payload["offer_count"])
	assert.Equal(t, true, payload["cached"])
}
