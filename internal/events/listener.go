package events

import (
	"context"
	"log/slog"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
)

// CartListener publishes every change of one visitor's cart. Publish
// failures are logged and never reach the caller of the mutation.
func CartListener(pub CartPublisher, visitorID string, logger *slog.Logger) cart.Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, ch cart.Change) {
		meta := EventMeta{
			CorrelationID: middleware.GetCorrelationID(ctx),
			PartitionKey:  visitorID,
		}
		if err := pub.PublishCartUpdated(ctx, meta, ch); err != nil {
			logger.WarnContext(ctx, "publish CartUpdated failed",
				"visitor_id", visitorID,
				"op", ch.Op,
				"revision", ch.Revision,
				"error", err,
			)
		}
	}
}
