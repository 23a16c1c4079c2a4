package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, fromName, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (htmlBody string, err error)
}

// NotificationEmailData is the template data for the "notification" email.
type NotificationEmailData struct {
	Subject string
	Lines   []string
}
