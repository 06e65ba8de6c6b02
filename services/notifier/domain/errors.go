// Package domain defines the error kinds surfaced by the notification
// pipeline. Each step has its own type so batch outcomes can report where a
// record failed and whether redelivery can help. Use errors.As() to check these.
package domain

import "fmt"

// DecodeError reports a stream record whose payload was not valid JSON or was
// missing a required field. Redelivering the same record cannot succeed, so
// decode failures are never retryable.
type DecodeError struct {
	Key string // partition key of the offending record, may be empty
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("decode record %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("decode record: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PublishError reports a failed notification publish. Transient failures
// (throttling, timeout, transport) are retryable; permanent ones are fatal
// for the event.
type PublishError struct {
	OrderID   string
	Err       error
	Transient bool
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish notification for order %s: %v", e.OrderID, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// EmitError reports a failed derived-event append, with the same
// transient/permanent split as PublishError scoped to the stream.
type EmitError struct {
	OrderID   string
	Err       error
	Transient bool
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit derived event for order %s: %v", e.OrderID, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }
