package pipeline

import notifierdomain "github.com/ghuser/mealflow/services/notifier/domain"

// Step identifies a pipeline stage in a per-record outcome.
type Step string

const (
	StepDecode  Step = "decode"
	StepPublish Step = "publish"
	StepEmit    Step = "emit"
)

// Outcome is the result of processing one record. Step is the last stage
// attempted: on success it is StepEmit with a nil Err; on failure it names
// the stage that failed, and no later stage was attempted.
type Outcome struct {
	OrderID string
	Step    Step
	Err     error
}

// Failed reports whether the record's processing failed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Retryable reports whether redelivering the record can succeed.
func (o Outcome) Retryable() bool { return notifierdomain.Retryable(o.Err) }

// Result aggregates the per-record outcomes of one batch, in processing
// order, so a redelivery mechanism can re-drive only the failed subset.
type Result struct {
	// Outcomes holds one entry per decode failure and one per order_placed
	// event, in batch order.
	Outcomes []Outcome
	// Skipped counts decoded records whose event type was not order_placed.
	Skipped int
}

// Succeeded returns the number of fully processed records.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failures returns the outcomes that failed, in batch order.
func (r Result) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// RetryableFailures returns the failed outcomes redelivery can resolve.
func (r Result) RetryableFailures() []Outcome {
	var retryable []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() && o.Retryable() {
			retryable = append(retryable, o)
		}
	}
	return retryable
}
