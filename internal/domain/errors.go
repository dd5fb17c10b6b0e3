package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMalformedVersion    = errors.New("malformed product version")
	ErrEventEncoding       = errors.New("event encoding failed")
	ErrPublishFailed       = errors.New("event delivery failed")
	ErrBrokerUnavailable   = errors.New("broker unavailable")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
)
