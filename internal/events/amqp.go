package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/saulo-duarte/codecourse-api/internal/config"
)

const publishTimeout = 5 * time.Second

type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher dials the broker and declares a durable topic exchange. An empty URL
// yields a Noop publisher.
func NewPublisher(ctx context.Context, url, exchange string) (Publisher, error) {
	log := config.WithContext(ctx)
	if url == "" {
		log.Warn("AMQP_URL is empty, event publishing is disabled")
		return Noop{}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	log.Infof("Publishing events to exchange %s", exchange)
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := encode(routingKey, payload, time.Now())
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(pubCtx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	config.WithContext(ctx).Debugf("Published event %s", routingKey)
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func encode(routingKey string, payload interface{}, at time.Time) ([]byte, error) {
	body, err := json.Marshal(Envelope{Type: routingKey, OccurredAt: at.UTC(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", routingKey, err)
	}
	return body, nil
}
