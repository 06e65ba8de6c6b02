// Package events defines the order event model shared by the placement API,
// the event stream, and the notification pipeline.
package events

import (
	"encoding/json"
	"fmt"
)

// Type is the closed enumeration of order event types. Values outside the
// enumeration survive decoding untouched; the pipeline ignores them rather
// than rejecting the record.
type Type string

const (
	// TypeOrderPlaced marks the initial event appended when an order is placed.
	TypeOrderPlaced Type = "order_placed"
	// TypeRestaurantNotified marks the derived event recording that the
	// restaurant notification was published.
	TypeRestaurantNotified Type = "restaurant_notified"
)

// Known reports whether t is part of the closed enumeration.
func (t Type) Known() bool {
	return t == TypeOrderPlaced || t == TypeRestaurantNotified
}

// TopicRestaurantNotifications is the pub/sub topic notification messages are
// published to. Restaurant-facing subscribers consume it via
// EventBus.Subscribe.
const TopicRestaurantNotifications = "restaurant.notifications"

// OrderEvent is one event in an order's lifecycle. OrderID is the correlation
// key threading every event for one order; it never changes after creation
// and doubles as the stream partition key, so a single consumer observes all
// events for an order in creation order.
type OrderEvent struct {
	OrderID        string `json:"orderId"`
	RestaurantName string `json:"restaurantName"`
	EventType      Type   `json:"eventType"`
}

// NewOrderPlaced builds the initial event for a freshly placed order.
func NewOrderPlaced(orderID, restaurantName string) OrderEvent {
	return OrderEvent{
		OrderID:        orderID,
		RestaurantName: restaurantName,
		EventType:      TypeOrderPlaced,
	}
}

// RestaurantNotified derives the follow-up event recording that the
// notification for e was published. OrderID and RestaurantName are copied
// unchanged; only the event type is rewritten.
func (e OrderEvent) RestaurantNotified() OrderEvent {
	derived := e
	derived.EventType = TypeRestaurantNotified
	return derived
}

// Validate checks that the required wire fields are present.
func (e OrderEvent) Validate() error {
	if e.OrderID == "" {
		return fmt.Errorf("order event: missing orderId")
	}
	if e.RestaurantName == "" {
		return fmt.Errorf("order event: missing restaurantName")
	}
	if e.EventType == "" {
		return fmt.Errorf("order event: missing eventType")
	}
	return nil
}

// Marshal serializes the event to its JSON wire form.
func (e OrderEvent) Marshal() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("order event: marshal: %w", err)
	}
	return payload, nil
}
