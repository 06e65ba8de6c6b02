package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/mealflow/pkg/config"
	"github.com/ghuser/mealflow/pkg/logger"
	orderdomain "github.com/ghuser/mealflow/services/order/domain"
	"github.com/ghuser/mealflow/services/order/domain/events"
)

type fakeAppender struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (f *fakeAppender) Append(_ context.Context, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.payloads = append(f.payloads, value)
	return nil
}

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// TestPlaceOrder verifies an order_placed event is appended with the orderId
// as partition key and the exact wire shape.
func TestPlaceOrder(t *testing.T) {
	stream := &fakeAppender{}
	svc := NewOrderService(stream, testLogger())

	orderID, err := svc.PlaceOrder(context.Background(), "Pizza Place")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := uuid.Parse(orderID); err != nil {
		t.Fatalf("orderId is not a valid uuid: %q", orderID)
	}

	if len(stream.keys) != 1 {
		t.Fatalf("expected 1 appended record, got %d", len(stream.keys))
	}
	if stream.keys[0] != orderID {
		t.Errorf("partition key: got %q, want %q", stream.keys[0], orderID)
	}

	var evt events.OrderEvent
	if err := json.Unmarshal(stream.payloads[0], &evt); err != nil {
		t.Fatalf("payload is not a valid order event: %v", err)
	}
	if evt.OrderID != orderID {
		t.Errorf("OrderID: got %q, want %q", evt.OrderID, orderID)
	}
	if evt.RestaurantName != "Pizza Place" {
		t.Errorf("RestaurantName: got %q, want %q", evt.RestaurantName, "Pizza Place")
	}
	if evt.EventType != events.TypeOrderPlaced {
		t.Errorf("EventType: got %q, want %q", evt.EventType, events.TypeOrderPlaced)
	}
}

// TestPlaceOrder_UniqueIDs verifies each placement gets a fresh correlation key.
func TestPlaceOrder_UniqueIDs(t *testing.T) {
	stream := &fakeAppender{}
	svc := NewOrderService(stream, testLogger())

	first, err := svc.PlaceOrder(context.Background(), "Pizza Place")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), "Pizza Place")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if first == second {
		t.Errorf("expected unique orderIds, both were %q", first)
	}
}

func TestPlaceOrder_EmptyRestaurantName(t *testing.T) {
	svc := NewOrderService(&fakeAppender{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), "   ")
	if !errors.Is(err, orderdomain.ErrInvalidRestaurantName) {
		t.Fatalf("expected ErrInvalidRestaurantName, got %v", err)
	}
}

func TestPlaceOrder_AppendFailure(t *testing.T) {
	stream := &fakeAppender{err: errors.New("broker unavailable")}
	svc := NewOrderService(stream, testLogger())

	_, err := svc.PlaceOrder(context.Background(), "Pizza Place")
	if err == nil {
		t.Fatal("expected error when stream append fails")
	}
}
