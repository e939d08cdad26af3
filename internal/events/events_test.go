package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisherWithoutURL(t *testing.T) {
	p, err := NewPublisher(context.Background(), "", "codecourse.events")
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(context.Background(), OrderCreatedKey, OrderCreated{OrderID: 1}))
	assert.NoError(t, p.Close())
}

func TestEncode(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	body, err := encode(OrderCreatedKey, OrderCreated{OrderID: 3, UserID: 9, CourseID: 42, TotalPrice: 1000000, PaymentMethod: "Credit Card"}, at)
	require.NoError(t, err)

	var got struct {
		Type       string       `json:"type"`
		OccurredAt time.Time    `json:"occurredAt"`
		Payload    OrderCreated `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, OrderCreatedKey, got.Type)
	assert.True(t, at.Equal(got.OccurredAt))
	assert.Equal(t, uint(42), got.Payload.CourseID)
	assert.Equal(t, int64(1000000), got.Payload.TotalPrice)
}

func TestEncodeRejectsUnsupportedPayload(t *testing.T) {
	_, err := encode("bad", map[string]interface{}{"ch": make(chan int)}, time.Now())
	assert.Error(t, err)
}
