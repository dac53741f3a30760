// Package email delivers ticket notifications over SMTP.
package email

import (
	"errors"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/clientdesk/clientdesk/internal/shared/services/markdown"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for ticket links (e.g., "https://portal.example.com")
}

// sendFunc delivers one message; the default dials the SMTP server per call.
type sendFunc func(m *gomail.Message) error

type SMTPEmailService struct {
	config   SMTPConfig
	send     sendFunc
	markdown markdown.MarkdownService
}

func NewSMTPEmailService(config SMTPConfig, md markdown.MarkdownService) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return newSMTPEmailService(config, md, func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	})
}

func newSMTPEmailService(config SMTPConfig, md markdown.MarkdownService, send sendFunc) *SMTPEmailService {
	return &SMTPEmailService{
		config:   config,
		send:     send,
		markdown: md,
	}
}

// SendTicketNotification mails a markdown message about a ticket, with a link to its thread.
func (s *SMTPEmailService) SendTicketNotification(to, subject, body string, ticketID uint) error {
	if to == "" {
		return errors.New("recipient is required")
	}

	rendered, err := s.markdown.ToHTMLSanitized(body)
	if err != nil {
		rendered = "<p>" + html.EscapeString(body) + "</p>"
	}

	link := fmt.Sprintf("%s/tickets/%d", s.config.BaseURL, ticketID)
	htmlBody := fmt.Sprintf(`<html>
<body>
%s
<p><a href="%s">Open ticket #%d</a></p>
</body>
</html>`, rendered, html.EscapeString(link), ticketID)

	plainBody := fmt.Sprintf("%s\n\nOpen ticket #%d: %s\n", body, ticketID, link)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
