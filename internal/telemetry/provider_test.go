package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/telemetry"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := telemetry.Setup(context.Background(), "pokedeck-test", "  ")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	// Non-routable address; nothing is exported because no span is recorded.
	shutdown, err := telemetry.Setup(context.Background(), "pokedeck-test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NotEqual(t, before, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}
