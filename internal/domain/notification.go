package domain

import "context"

// Notification defaults used when no override is configured.
const (
	DefaultFromName = "Secret Santa Generator"
	DefaultCurrency = "US$"
)

// Notification is the rendered message for one giver. It is never stored.
type Notification struct {
	Subject string
	Body    string
}

// NotificationFormatter renders the message for one assignment. Implementations must be pure.
type NotificationFormatter interface {
	Format(a Assignment, event Event) Notification
}

// Dispatcher hands a rendered notification to the outbound transport.
type Dispatcher interface {
	Dispatch(ctx context.Context, fromName, to, subject, body string) error
}
