package email

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"secretsanta/internal/domain"
)

// DefaultSMTPPort is the submission port; net/smtp upgrades it with STARTTLS.
const DefaultSMTPPort = 587

// SMTPConfig holds configuration for an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	addr        string
	auth        smtp.Auth
	fromAddress string
	fromName    string
	send        sendMailFunc
	now         func() time.Time
}

func newSMTPMailer(cfg SMTPConfig, fromAddress, fromName string) (*smtpMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp mailer: host is required")
	}
	if fromAddress == "" {
		return nil, fmt.Errorf("smtp mailer: from address is required")
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultSMTPPort
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpMailer{
		addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		auth:        auth,
		fromAddress: fromAddress,
		fromName:    fromName,
		send:        smtp.SendMail,
		now:         time.Now,
	}, nil
}

// Send delivers one message. net/smtp has no context support, so ctx is only checked
// before the session starts.
func (s *smtpMailer) Send(ctx context.Context, fromName, to, subject, html, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := fromName
	if name == "" {
		name = s.fromName
	}
	msg, err := buildMIMEMessage(name, s.fromAddress, to, subject, html, text, s.now())
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}
	if err := s.send(s.addr, s.auth, s.fromAddress, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	log.Printf("[MAILER] Email sent via SMTP to %s", to)
	return nil
}

func buildMIMEMessage(fromName, fromAddress, to, subject, html, text string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	from := fromAddress
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), fromAddress)
	}
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if html == "" {
		buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(text)
		return buf.Bytes(), nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())
	for _, part := range []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", text},
		{"text/html; charset=UTF-8", html},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

var _ domain.Mailer = (*smtpMailer)(nil)
