package entities

import "errors"

var (
	// ErrInvalidTransition is returned when a status transition is not
	// allowed by the document's state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyDocument is returned when an invoice is recalculated with no
	// line items.
	ErrEmptyDocument = errors.New("document has no line items")

	// ErrMaxRemindersExceeded is returned when a reminder beyond level 3 is
	// raised.
	ErrMaxRemindersExceeded = errors.New("maximum reminder level exceeded")
)
