package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/mealflow/pkg/logger"
	orderdomain "github.com/ghuser/mealflow/services/order/domain"
	"github.com/ghuser/mealflow/services/order/domain/events"
)

// EventAppender appends one record to the order event stream, keyed for
// ordering. Implemented by stream.Writer; a fake satisfies it in tests.
type EventAppender interface {
	Append(ctx context.Context, key string, value []byte) error
}

// OrderService handles order placement: it generates the correlation key and
// appends the initial order_placed event to the stream. Everything after that
// point is driven by stream consumers.
type OrderService struct {
	stream EventAppender
	log    logger.Logger
}

// NewOrderService returns an OrderService appending to the given stream.
func NewOrderService(stream EventAppender, log logger.Logger) *OrderService {
	return &OrderService{stream: stream, log: log}
}

// PlaceOrder creates a fresh orderId and appends an order_placed event keyed
// by it. Returns the orderId for the caller to correlate with.
func (s *OrderService) PlaceOrder(ctx context.Context, restaurantName string) (string, error) {
	restaurantName = strings.TrimSpace(restaurantName)
	if restaurantName == "" {
		return "", fmt.Errorf("%w: empty", orderdomain.ErrInvalidRestaurantName)
	}

	orderID := uuid.NewString()
	s.log.DebugContext(ctx, "placing order", "order_id", orderID, "restaurant_name", restaurantName)

	evt := events.NewOrderPlaced(orderID, restaurantName)
	payload, err := evt.Marshal()
	if err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}

	if err := s.stream.Append(ctx, orderID, payload); err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}

	s.log.DebugContext(ctx, "order event appended", "order_id", orderID, "event_type", evt.EventType)
	return orderID, nil
}
