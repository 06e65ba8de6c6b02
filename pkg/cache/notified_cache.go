package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// NotifiedTTL bounds how long a notified-order marker is kept. Markers
	// exist only to absorb at-least-once redelivery of notifications.
	NotifiedTTL = 7 * 24 * time.Hour

	notifiedKeyPrefix = "notified"
)

// NotifiedOrders is the read model of orders whose restaurant has been
// notified, written by the notification-topic subscriber. MarkNotified is
// idempotent by orderId, which is what makes duplicate notification
// deliveries harmless downstream.
type NotifiedOrders struct {
	client *RedisClient
}

// NewNotifiedOrders creates a NotifiedOrders store backed by the given RedisClient.
func NewNotifiedOrders(r *RedisClient) *NotifiedOrders {
	return &NotifiedOrders{client: r}
}

// MarkNotified records that the restaurant for orderID was notified.
// Returns true when this is the first delivery for the order and false on a
// duplicate, without overwriting the original record.
func (n *NotifiedOrders) MarkNotified(ctx context.Context, orderID, restaurantName string) (bool, error) {
	first, err := n.client.Client().SetNX(ctx, n.key(orderID), restaurantName, NotifiedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("cache mark notified: %w", err)
	}
	return first, nil
}

// WasNotified reports whether a notification for orderID has been observed.
func (n *NotifiedOrders) WasNotified(ctx context.Context, orderID string) (bool, error) {
	count, err := n.client.Client().Exists(ctx, n.key(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("cache check notified: %w", err)
	}
	return count > 0, nil
}

// key builds the Redis key: "notified:{orderId}"
func (n *NotifiedOrders) key(orderID string) string {
	return notifiedKeyPrefix + ":" + orderID
}
