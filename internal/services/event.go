package services

import (
	"strconv"
	"strings"
	"time"

	"secretsanta/internal/domain"
)

// EventDateLayout is the organizer-facing date format (mm/dd/yyyy). Leading zeros
// are optional on month and day.
const EventDateLayout = "1/2/2006"

// ParseEvent builds the draw's Event from raw organizer input. An empty date is
// allowed and means unspecified; the budget must be a non-negative integer.
func ParseEvent(rawDate, rawBudget string) (domain.Event, error) {
	var (
		date  time.Time
		dated bool
	)
	if s := strings.TrimSpace(rawDate); s != "" {
		d, err := time.Parse(EventDateLayout, s)
		if err != nil {
			return domain.Event{}, domain.ErrInvalidDate
		}
		date, dated = d, true
	}

	budget, err := strconv.Atoi(strings.TrimSpace(rawBudget))
	if err != nil || budget < 0 {
		return domain.Event{}, domain.ErrInvalidBudget
	}
	if !dated {
		return domain.NewUndatedEvent(budget), nil
	}
	return domain.NewEvent(date, budget), nil
}
