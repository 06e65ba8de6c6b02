package pipeline

import "github.com/ghuser/mealflow/services/order/domain/events"

// FilterPlaced returns the ordered subsequence of evts with event type
// order_placed. Other event types, known or not, are not errors; they are
// simply outside this pipeline's interest.
func FilterPlaced(evts []events.OrderEvent) []events.OrderEvent {
	var placed []events.OrderEvent
	for _, e := range evts {
		if e.EventType == events.TypeOrderPlaced {
			placed = append(placed, e)
		}
	}
	return placed
}
