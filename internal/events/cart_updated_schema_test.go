package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
)

func TestCartUpdatedEnvelopeSchema(t *testing.T) {
	schema := loadSchema(t, CartUpdatedSchemaPath)

	validate := func(ev CartUpdatedEvent) error {
		var asMap map[string]interface{}
		body, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &asMap); err != nil {
			return err
		}
		if err := checkObject(schema, asMap); err != nil {
			return err
		}
		for _, key := range []string{"eventName", "eventVersion", "schema"} {
			if err := assertConst(schema, asMap, key); err != nil {
				return err
			}
		}

		payloadSchema := properties(schema)["payload"]
		payload, ok := asMap["payload"].(map[string]interface{})
		if !ok {
			return fmt.Errorf("missing payload object")
		}
		if err := checkObject(payloadSchema, payload); err != nil {
			return fmt.Errorf("payload: %w", err)
		}

		itemSchema, _ := properties(payloadSchema)["items"]["items"].(map[string]interface{})
		items, _ := payload["items"].([]interface{})
		for i, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				return fmt.Errorf("payload item %d is not an object", i)
			}
			if err := checkObject(itemSchema, item); err != nil {
				return fmt.Errorf("payload item %d: %w", i, err)
			}
		}
		return nil
	}

	visitor := uuid.NewString()
	meta := EventMeta{CorrelationID: uuid.NewString(), PartitionKey: visitor}
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	add := cart.Change{
		Op:       cart.OpAdd,
		ItemID:   "25",
		Items:    []cart.Item{{ID: "25", Name: "pikachu", ImageURL: "p.png", Quantity: 2}},
		Revision: 3,
	}
	require.NoError(t, validate(newCartUpdatedEvent(meta, pokedeckProducer, add, now)))

	cleared := cart.Change{Op: cart.OpClear, Items: []cart.Item{}, Revision: 4}
	require.NoError(t, validate(newCartUpdatedEvent(EventMeta{PartitionKey: visitor}, pokedeckProducer, cleared, now)))

	wrong := newCartUpdatedEvent(meta, pokedeckProducer, add, now)
	wrong.EventName = "WrongEvent"
	require.Error(t, validate(wrong))

	wrong = newCartUpdatedEvent(meta, pokedeckProducer, add, now)
	wrong.Schema = "contracts/events/cart/Other.schema.json"
	require.Error(t, validate(wrong))
}

// loadSchema reads a schema by its repository-relative path.
func loadSchema(t *testing.T, rel string) map[string]interface{} {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", filepath.FromSlash(rel)))
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

func properties(schema map[string]interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{})
	props, _ := schema["properties"].(map[string]interface{})
	for k, v := range props {
		if m, ok := v.(map[string]interface{}); ok {
			out[k] = m
		}
	}
	return out
}

// checkObject enforces required fields and, when the schema closes the
// object, rejects fields it does not declare.
func checkObject(schema, obj map[string]interface{}) error {
	if schema == nil {
		return fmt.Errorf("schema not found")
	}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, f := range req {
			if _, ok := obj[f.(string)]; !ok {
				return fmt.Errorf("missing required field %s", f)
			}
		}
	}
	if closed, ok := schema["additionalProperties"].(bool); ok && !closed {
		props := properties(schema)
		for k := range obj {
			if _, ok := props[k]; !ok {
				return fmt.Errorf("unexpected field %s", k)
			}
		}
	}
	return nil
}

func assertConst(schema, obj map[string]interface{}, key string) error {
	want, ok := properties(schema)[key]["const"]
	if !ok {
		return fmt.Errorf("schema has no const for %s", key)
	}
	if got := obj[key]; fmt.Sprint(got) != fmt.Sprint(want) {
		return fmt.Errorf("%s: got %v, want %v", key, got, want)
	}
	return nil
}
