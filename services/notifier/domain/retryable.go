package domain

import "errors"

// Retryable reports whether redelivering the record behind err can succeed.
// Decode failures never are; publish and emit failures are when marked
// transient. Unrecognized errors default to retryable so an unclassified
// infrastructure failure is not silently dropped.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}

	var pubErr *PublishError
	if errors.As(err, &pubErr) {
		return pubErr.Transient
	}

	var emitErr *EmitError
	if errors.As(err, &emitErr) {
		return emitErr.Transient
	}

	return true
}
