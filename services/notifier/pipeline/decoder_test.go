package pipeline

import (
	"errors"
	"testing"

	"github.com/ghuser/mealflow/pkg/stream"
	notifierdomain "github.com/ghuser/mealflow/services/notifier/domain"
	"github.com/ghuser/mealflow/services/order/domain/events"
)

func TestDecodeRecord(t *testing.T) {
	rec := stream.Record{
		Key:   "o1",
		Value: []byte(`{"orderId":"o1","restaurantName":"Pizza Place","eventType":"order_placed"}`),
	}
	evt, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if evt.OrderID != "o1" || evt.RestaurantName != "Pizza Place" || evt.EventType != events.TypeOrderPlaced {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestDecodeRecord_MalformedJSON(t *testing.T) {
	_, err := DecodeRecord(stream.Record{Key: "o1", Value: []byte(`{not json`)})

	var decodeErr *notifierdomain.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Key != "o1" {
		t.Errorf("Key: got %q, want %q", decodeErr.Key, "o1")
	}
	if notifierdomain.Retryable(err) {
		t.Error("decode failures must not be retryable")
	}
}

func TestDecodeRecord_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing orderId", `{"restaurantName":"Pizza Place","eventType":"order_placed"}`},
		{"missing restaurantName", `{"orderId":"o1","eventType":"order_placed"}`},
		{"missing eventType", `{"orderId":"o1","restaurantName":"Pizza Place"}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord(stream.Record{Value: []byte(tt.payload)})
			var decodeErr *notifierdomain.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

// TestDecodeRecord_UnknownEventType verifies event types outside the closed
// enumeration decode fine; the filter, not the decoder, decides relevance.
func TestDecodeRecord_UnknownEventType(t *testing.T) {
	rec := stream.Record{
		Key:   "o2",
		Value: []byte(`{"orderId":"o2","restaurantName":"Curry House","eventType":"order_cancelled"}`),
	}
	evt, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if evt.EventType.Known() {
		t.Errorf("order_cancelled should not be a known type")
	}
}
