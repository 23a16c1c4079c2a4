package domain

import "time"

// Event holds the exchange metadata shared by every notification of a draw.
// Date is only meaningful when DateGiven is set; any calendar date, including
// the zero time, is a valid exchange date.
type Event struct {
	Date      time.Time
	DateGiven bool
	Budget    int
}

// NewEvent returns an Event for the given exchange date and budget.
func NewEvent(date time.Time, budget int) Event {
	return Event{Date: date, DateGiven: true, Budget: budget}
}

// NewUndatedEvent returns an Event whose exchange date was left unspecified.
func NewUndatedEvent(budget int) Event {
	return Event{Budget: budget}
}

// HasDate reports whether an exchange date was supplied.
func (e Event) HasDate() bool {
	return e.DateGiven
}
