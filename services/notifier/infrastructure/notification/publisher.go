// Package notification publishes restaurant notification messages to the
// pub/sub topic consumed by restaurant-facing subscribers.
package notification

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/ghuser/mealflow/pkg/events"
	"github.com/ghuser/mealflow/pkg/logger"
	notifierdomain "github.com/ghuser/mealflow/services/notifier/domain"
	orderevents "github.com/ghuser/mealflow/services/order/domain/events"
)

// TopicPublisher is the slice of the event bus this adapter needs.
// *events.EventBus satisfies it.
type TopicPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Publisher implements pipeline.NotificationPublisher over the pub/sub bus.
type Publisher struct {
	bus   TopicPublisher
	topic string
	log   logger.Logger
}

// NewPublisher returns a Publisher sending to the given topic.
func NewPublisher(bus TopicPublisher, topic string, log logger.Logger) *Publisher {
	return &Publisher{bus: bus, topic: topic, log: log}
}

// Notify serializes evt and publishes it as one notification message.
// Bus failures are reported as transient PublishErrors; a payload that
// cannot be serialized is permanent.
func (p *Publisher) Notify(ctx context.Context, evt orderevents.OrderEvent) error {
	payload, err := evt.Marshal()
	if err != nil {
		return &notifierdomain.PublishError{OrderID: evt.OrderID, Err: err, Transient: false}
	}

	msg := pkgevents.NewMessage(payload,
		"order_id", evt.OrderID,
		"event_type", string(evt.EventType),
	)
	if err := p.bus.Publish(ctx, p.topic, msg); err != nil {
		return &notifierdomain.PublishError{OrderID: evt.OrderID, Err: err, Transient: true}
	}

	p.log.DebugContext(ctx, "notification published",
		"order_id", evt.OrderID, "restaurant_name", evt.RestaurantName, "topic", p.topic)
	return nil
}
