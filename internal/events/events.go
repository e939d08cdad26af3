package events

import (
	"context"
	"time"
)

const OrderCreatedKey = "order.created"

type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type OrderCreated struct {
	OrderID       uint   `json:"orderId"`
	UserID        uint   `json:"userId"`
	CourseID      uint   `json:"courseId"`
	TotalPrice    int64  `json:"totalPrice"`
	PaymentMethod string `json:"paymentMethod"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }

func (Noop) Close() error { return nil }
