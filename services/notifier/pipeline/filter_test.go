package pipeline

import (
	"testing"

	"github.com/ghuser/mealflow/services/order/domain/events"
)

func TestFilterPlaced_OrderPreserved(t *testing.T) {
	in := []events.OrderEvent{
		events.NewOrderPlaced("o1", "Pizza Place"),
		events.NewOrderPlaced("o2", "Curry House").RestaurantNotified(),
		events.NewOrderPlaced("o3", "Taco Stand"),
		{OrderID: "o4", RestaurantName: "Noodle Bar", EventType: "order_cancelled"},
		events.NewOrderPlaced("o5", "Sushi Spot"),
	}

	got := FilterPlaced(in)
	want := []string{"o1", "o3", "o5"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].OrderID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].OrderID, id)
		}
		if got[i].EventType != events.TypeOrderPlaced {
			t.Errorf("position %d: got type %q", i, got[i].EventType)
		}
	}
}

func TestFilterPlaced_Empty(t *testing.T) {
	if got := FilterPlaced(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}

	onlyNotified := []events.OrderEvent{
		events.NewOrderPlaced("o1", "Pizza Place").RestaurantNotified(),
	}
	if got := FilterPlaced(onlyNotified); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}
}
