package service

import "errors"

// Error taxonomy sentinels. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can map validation vs conflict vs not-found to HTTP status codes
// with errors.Is.
var (
	// ErrValidation marks bad input rejected before any mutation
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unknown loan/installment/staff reference
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a business-rule rejection (duplicate open loan, wrong
	// status for the requested transition, guarantor-is-self)
	ErrConflict = errors.New("conflict")
)

// Notifier pushes back-office events to connected websocket clients. Services
// treat it as optional and best-effort.
type Notifier interface {
	BroadcastEvent(event string, payload interface{})
}
