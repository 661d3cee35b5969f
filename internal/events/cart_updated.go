package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
)

const (
	CartUpdatedEventName    = "CartUpdated"
	CartUpdatedEventVersion = 1
	CartUpdatedSchemaPath   = "contracts/events/cart/CartUpdated.v1.enveloped.schema.json"
)

// EventEnvelope is the shared v1 envelope around every published payload.
type EventEnvelope struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
}

type CartUpdatedEvent struct {
	EventEnvelope
	Payload CartUpdatedPayload `json:"payload"`
}

type CartUpdatedPayload struct {
	VisitorID     string            `json:"visitorId"`
	Operation     string            `json:"operation"`
	ItemID        string            `json:"itemId,omitempty"`
	Items         []CartUpdatedItem `json:"items"`
	Count         int               `json:"count"`
	TotalQuantity int               `json:"totalQuantity"`
	Timestamp     time.Time         `json:"timestamp"`
}

type CartUpdatedItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// EventMeta carries the tracing fields of an envelope.
type EventMeta struct {
	CorrelationID string
	PartitionKey  string
}

// Validate checks the envelope fields consumers rely on.
func (e EventEnvelope) Validate(expectedName string, expectedVersion int) error {
	switch {
	case e.EventName != expectedName:
		return errf("eventName")
	case e.EventVersion != expectedVersion:
		return errf("eventVersion")
	case e.EventID == "":
		return errf("eventId")
	case e.PartitionKey == "":
		return errf("partitionKey")
	case e.Producer == "":
		return errf("producer")
	}
	return nil
}

// newCartUpdatedEvent uses the store revision as the per-visitor sequence.
func newCartUpdatedEvent(meta EventMeta, producer string, ch cart.Change, occurredAt time.Time) CartUpdatedEvent {
	payload := CartUpdatedPayload{
		VisitorID: meta.PartitionKey,
		Operation: string(ch.Op),
		ItemID:    ch.ItemID,
		Items:     make([]CartUpdatedItem, 0, len(ch.Items)),
		Count:     len(ch.Items),
		Timestamp: occurredAt,
	}
	for _, it := range ch.Items {
		payload.Items = append(payload.Items, CartUpdatedItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
		})
		payload.TotalQuantity += it.Quantity
	}

	return CartUpdatedEvent{
		EventEnvelope: EventEnvelope{
			EventName:     CartUpdatedEventName,
			EventVersion:  CartUpdatedEventVersion,
			EventID:       uuid.NewString(),
			CorrelationID: meta.CorrelationID,
			Producer:      producer,
			PartitionKey:  meta.PartitionKey,
			Sequence:      ch.Revision,
			OccurredAt:    occurredAt,
			Schema:        CartUpdatedSchemaPath,
		},
		Payload: payload,
	}
}

func errf(field string) error {
	return fmt.Errorf("validation failed for %s", field)
}
