package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the draw pipeline and its delivery layers.
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrInvalidDate              = errors.New("Invalid date format")
	ErrInvalidBudget            = errors.New("Invalid budget value")
	ErrInsufficientParticipants = errors.New("Insufficient participants")
	ErrTooManyParticipants      = errors.New("Too many participants")
	ErrDispatch                 = errors.New("dispatch failed")
	ErrNotFound                 = errors.New("not found")
)

// Slot fields named by SlotError.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldGift  = "gift"
)

// SlotError reports the first invalid participant slot of a submission.
// Position is 1-based.
type SlotError struct {
	Position  int
	Field     string
	Duplicate bool
}

func (e *SlotError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("Duplicate email for entity no. %d", e.Position)
	}
	switch e.Field {
	case FieldName:
		return fmt.Sprintf("Name not found for entity no. %d", e.Position)
	case FieldEmail:
		return fmt.Sprintf("Email mandatory for entity no. %d", e.Position)
	default:
		return fmt.Sprintf("Gift mandatory for entity no. %d", e.Position)
	}
}

// Unwrap lets callers match any slot problem with errors.Is(err, ErrInvalidInput).
func (e *SlotError) Unwrap() error { return ErrInvalidInput }

// DispatchError is returned when the transport rejects a notification mid-run.
// Notified counts the participants that were reached before the failure.
type DispatchError struct {
	RunID    string
	Email    string
	Notified int
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s failed after %d notification(s): %v", e.Email, e.Notified, e.Err)
}

func (e *DispatchError) Unwrap() []error { return []error{ErrDispatch, e.Err} }
