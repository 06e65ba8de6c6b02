// Package emit appends derived restaurant_notified events to the order event
// stream.
package emit

import (
	"context"

	"github.com/ghuser/mealflow/pkg/logger"
	notifierdomain "github.com/ghuser/mealflow/services/notifier/domain"
	orderevents "github.com/ghuser/mealflow/services/order/domain/events"
)

// StreamAppender is the slice of the stream writer this adapter needs.
// *stream.Writer satisfies it.
type StreamAppender interface {
	Append(ctx context.Context, key string, value []byte) error
}

// Emitter implements pipeline.DerivedEventEmitter over the event stream.
type Emitter struct {
	stream StreamAppender
	log    logger.Logger
}

// NewEmitter returns an Emitter appending to the given stream.
func NewEmitter(stream StreamAppender, log logger.Logger) *Emitter {
	return &Emitter{stream: stream, log: log}
}

// Emit derives the restaurant_notified event from evt and appends it keyed by
// the source orderId, preserving per-order ordering for stream consumers.
// Stream failures are reported as transient EmitErrors.
func (e *Emitter) Emit(ctx context.Context, evt orderevents.OrderEvent) error {
	derived := evt.RestaurantNotified()
	payload, err := derived.Marshal()
	if err != nil {
		return &notifierdomain.EmitError{OrderID: evt.OrderID, Err: err, Transient: false}
	}

	if err := e.stream.Append(ctx, derived.OrderID, payload); err != nil {
		return &notifierdomain.EmitError{OrderID: evt.OrderID, Err: err, Transient: true}
	}

	e.log.DebugContext(ctx, "derived event emitted",
		"order_id", derived.OrderID, "event_type", derived.EventType)
	return nil
}
