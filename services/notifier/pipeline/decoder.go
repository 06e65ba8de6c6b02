package pipeline

import (
	"encoding/json"

	"github.com/ghuser/mealflow/pkg/stream"
	notifierdomain "github.com/ghuser/mealflow/services/notifier/domain"
	"github.com/ghuser/mealflow/services/order/domain/events"
)

// DecodeRecord turns one stream record into an OrderEvent. It is pure: a
// malformed payload or missing required field yields a DecodeError for that
// record and nothing else.
func DecodeRecord(rec stream.Record) (events.OrderEvent, error) {
	var evt events.OrderEvent
	if err := json.Unmarshal(rec.Value, &evt); err != nil {
		return events.OrderEvent{}, &notifierdomain.DecodeError{Key: rec.Key, Err: err}
	}
	if err := evt.Validate(); err != nil {
		return events.OrderEvent{}, &notifierdomain.DecodeError{Key: rec.Key, Err: err}
	}
	return evt, nil
}
