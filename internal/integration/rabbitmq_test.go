//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/memory"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/testutil"
)

func TestCartMutations_PublishCartUpdated(t *testing.T) {
	url, consumeConn := testutil.StartRabbitMQ(t)

	conn, err := events.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	publisher, err := events.NewPublisher(conn, events.PublisherOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	ch, err := consumeConn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	q, err := ch.QueueDeclare(
		"",
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,   // args
	)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, events.CartUpdatedRoutingKey, events.EventsExchange, false, nil))

	msgs, err := ch.Consume(q.Name, "integration-cart-updated", true, true, false, false, nil)
	require.NoError(t, err)

	const visitor = "7215ee9c-7d9d-4c5f-8c21-5f6e1f0a1b2c"
	ctx := middleware.WithCorrelationID(context.Background(), "corr-int-1")
	store, err := session.NewRegistry(memory.New(), publisher, logging.Discard()).Cart(ctx, visitor)
	require.NoError(t, err)

	require.NoError(t, store.Add(ctx, cart.Item{ID: "25", Name: "pikachu"}))
	require.NoError(t, store.Increase(ctx, "25"))

	var got []events.CartUpdatedEvent
	timeout := time.After(20 * time.Second)
	for len(got) < 2 {
		select {
		case msg := <-msgs:
			var ev events.CartUpdatedEvent
			require.NoError(t, json.Unmarshal(msg.Body, &ev))
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for CartUpdated, got %d", len(got))
		}
	}

	require.NoError(t, got[0].Validate(events.CartUpdatedEventName, events.CartUpdatedEventVersion))
	require.Equal(t, visitor, got[0].PartitionKey)
	require.Equal(t, "corr-int-1", got[0].CorrelationID)
	require.EqualValues(t, 1, got[0].Sequence)
	require.Equal(t, "add", got[0].Payload.Operation)

	require.EqualValues(t, 2, got[1].Sequence)
	require.Equal(t, "increase", got[1].Payload.Operation)
	require.Equal(t, 2, got[1].Payload.TotalQuantity)
}
