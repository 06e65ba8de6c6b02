// Package pipeline implements the order-event notification pipeline: decode a
// batch of stream records, keep the order_placed events, publish a restaurant
// notification for each, and append a restaurant_notified event recording it.
package pipeline

import (
	"context"
	"time"

	"github.com/ghuser/mealflow/pkg/logger"
	"github.com/ghuser/mealflow/pkg/stream"
	"github.com/ghuser/mealflow/services/order/domain/events"
)

// NotificationPublisher sends one notification message for an order_placed
// event to the restaurant notification topic. Exactly one outbound message
// per call; the call is not deduplicated, so retries can duplicate.
type NotificationPublisher interface {
	Notify(ctx context.Context, evt events.OrderEvent) error
}

// DerivedEventEmitter appends the restaurant_notified event derived from the
// given source event to the stream, keyed by the source orderId.
type DerivedEventEmitter interface {
	Emit(ctx context.Context, evt events.OrderEvent) error
}

// Orchestrator drives one batch through decode → filter → publish → emit.
// Client handles are passed in at construction so tests can substitute fakes
// and no process-wide state is hidden in the package.
type Orchestrator struct {
	publisher NotificationPublisher
	emitter   DerivedEventEmitter
	log       logger.Logger
}

// NewOrchestrator returns an Orchestrator using the given publisher and emitter.
func NewOrchestrator(publisher NotificationPublisher, emitter DerivedEventEmitter, log logger.Logger) *Orchestrator {
	return &Orchestrator{publisher: publisher, emitter: emitter, log: log}
}

// ProcessBatch processes one batch of raw stream records sequentially and
// returns per-record outcomes.
//
// Per event, publish strictly precedes emit: the derived event asserts that
// the notification was attempted, so a publish failure suppresses the emit
// for that event. A failure on one event is recorded against that event only
// and never aborts its siblings; the caller decides redelivery from the
// aggregated result. Side effects already committed when a later record
// fails are not rolled back (at-least-once).
func (o *Orchestrator) ProcessBatch(ctx context.Context, records []stream.Record) Result {
	start := time.Now()
	defer func() { batchDurationSeconds.Observe(time.Since(start).Seconds()) }()

	var result Result

	decoded := make([]events.OrderEvent, 0, len(records))
	for _, rec := range records {
		evt, err := DecodeRecord(rec)
		if err != nil {
			decodeFailuresTotal.Inc()
			stepFailuresTotal.WithLabelValues(string(StepDecode)).Inc()
			o.log.WarnContext(ctx, "record decode failed", "key", rec.Key, "error", err)
			result.Outcomes = append(result.Outcomes, Outcome{OrderID: rec.Key, Step: StepDecode, Err: err})
			continue
		}
		recordsDecodedTotal.Inc()
		decoded = append(decoded, evt)
	}

	placed := FilterPlaced(decoded)
	result.Skipped = len(decoded) - len(placed)

	for _, evt := range placed {
		result.Outcomes = append(result.Outcomes, o.processEvent(ctx, evt))
	}

	o.log.InfoContext(ctx, "batch processed",
		"records", len(records),
		"placed", len(placed),
		"skipped", result.Skipped,
		"succeeded", result.Succeeded(),
		"failed", len(result.Failures()),
	)
	return result
}

// processEvent runs publish-then-emit for one order_placed event.
func (o *Orchestrator) processEvent(ctx context.Context, evt events.OrderEvent) Outcome {
	if err := o.publisher.Notify(ctx, evt); err != nil {
		stepFailuresTotal.WithLabelValues(string(StepPublish)).Inc()
		o.log.WarnContext(ctx, "notification publish failed",
			"order_id", evt.OrderID, "restaurant_name", evt.RestaurantName, "error", err)
		return Outcome{OrderID: evt.OrderID, Step: StepPublish, Err: err}
	}
	notificationsPublishedTotal.Inc()
	o.log.DebugContext(ctx, "notified restaurant",
		"order_id", evt.OrderID, "restaurant_name", evt.RestaurantName)

	if err := o.emitter.Emit(ctx, evt); err != nil {
		stepFailuresTotal.WithLabelValues(string(StepEmit)).Inc()
		o.log.WarnContext(ctx, "derived event emit failed",
			"order_id", evt.OrderID, "error", err)
		return Outcome{OrderID: evt.OrderID, Step: StepEmit, Err: err}
	}
	eventsEmittedTotal.Inc()
	o.log.DebugContext(ctx, "derived event appended",
		"order_id", evt.OrderID, "event_type", events.TypeRestaurantNotified)

	return Outcome{OrderID: evt.OrderID, Step: StepEmit}
}
