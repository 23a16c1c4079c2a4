package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"secretsanta/internal/domain"
)

// NotificationTemplate is the renderer template used for the HTML part of a notification.
const NotificationTemplate = "notification"

type emailDispatcher struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailDispatcher returns a Dispatcher that uses the given Mailer and template renderer.
// The plain-text body is sent as is; renderer, when non-nil, adds an HTML alternative.
func NewEmailDispatcher(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.Dispatcher {
	return &emailDispatcher{mailer: mailer, renderer: renderer}
}

func (d *emailDispatcher) Dispatch(ctx context.Context, fromName, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("notification recipient is empty")
	}
	var htmlBody string
	if d.renderer != nil {
		data := &domain.NotificationEmailData{Subject: subject, Lines: strings.Split(body, "\n")}
		rendered, err := d.renderer.Render(NotificationTemplate, data)
		if err != nil {
			return fmt.Errorf("failed to render notification template: %w", err)
		}
		htmlBody = rendered
	}
	if err := d.mailer.Send(ctx, fromName, to, subject, htmlBody, body); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	log.Printf("[EMAIL] Notification sent to %s", to)
	return nil
}
