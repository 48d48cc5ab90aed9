// Publicación opcional de eventos del storefront por AMQP.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const exchange = "storefront.events"

// Publisher emits storefront events to a topic exchange. A nil Publisher
// is valid and publishes nothing, so callers never have to guard on the
// broker being configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(rabbitURL string) (*Publisher, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(struct {
		Type      string    `json:"type"`
		Timestamp time.Time `json:"timestamp"`
		Payload   any       `json:"payload"`
	}{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("event", eventType).Msg("publish event")
	return p.channel.PublishWithContext(ctx,
		exchange, eventType, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// Event payloads.

type LoginEvent struct {
	CustomerID string `json:"customer_id"`
	LoginID    string `json:"login_id"`
	VIP        bool   `json:"vip"`
}

type CheckoutEvent struct {
	CustomerID string  `json:"customer_id"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
}
