package services

import (
	"fmt"

	"secretsanta/internal/domain"
)

const (
	// EventDateDisplayLayout renders e.g. "Tuesday - 24 Dec, 2024".
	EventDateDisplayLayout = "Monday - 02 Jan, 2006"

	unspecifiedDate = "-"
)

type notificationFormatter struct {
	currency string
}

// NewNotificationFormatter returns a formatter that prefixes budgets with currency.
func NewNotificationFormatter(currency string) domain.NotificationFormatter {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &notificationFormatter{currency: currency}
}

func (f *notificationFormatter) Format(a domain.Assignment, event domain.Event) domain.Notification {
	date := unspecifiedDate
	if event.HasDate() {
		date = event.Date.Format(EventDateDisplayLayout)
	}
	return domain.Notification{
		Subject: fmt.Sprintf("%s, you have drawn a name for Secret Santa!", a.Giver.Name),
		Body: fmt.Sprintf("Hi %s,\n"+
			"The names have been drawn using the Secret Santa Generator. Find below your drawn name.\n"+
			"\n%s\n"+
			"A gift idea for %s is %s.\n"+
			"Date of gift exchange: %s\n"+
			"Budget: %s %d\n"+
			"\nHave Fun!\n"+
			"- Secret Santa Generator",
			a.Giver.Name, a.Recipient.Name, a.Recipient.Name, a.Recipient.Gift, date, f.currency, event.Budget),
	}
}
