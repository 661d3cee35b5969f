package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
)

// CartPublisher announces applied cart mutations.
type CartPublisher interface {
	PublishCartUpdated(ctx context.Context, meta EventMeta, ch cart.Change) error
}

type Publisher struct {
	ch       Channel
	producer string
	now      func() time.Time
}

type PublisherOptions struct {
	Producer string
}

// NewPublisher opens a channel on conn and declares the events exchange.
func NewPublisher(conn *amqp.Connection, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return NewChannelPublisher(ch, opts)
}

func NewChannelPublisher(ch Channel, opts PublisherOptions) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	producer := opts.Producer
	if producer == "" {
		producer = pokedeckProducer
	}

	return &Publisher{
		ch:       ch,
		producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartUpdated(ctx context.Context, meta EventMeta, ch cart.Change) error {
	env := newCartUpdatedEvent(meta, p.producer, ch, p.now())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartUpdated envelope: %w", err)
	}
	return p.publishJSON(ctx, CartUpdatedRoutingKey, env.EventID, env.CorrelationID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID, correlationID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: correlationID,
			Body:          body,
		},
	)
}

// Nop drops every event. It stands in when no broker is configured.
type Nop struct{}

func (Nop) PublishCartUpdated(context.Context, EventMeta, cart.Change) error { return nil }
