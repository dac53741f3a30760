package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/clientdesk/clientdesk/internal/shared/services/markdown"
)

func TestSendTicketNotification(t *testing.T) {
	var sent []*gomail.Message
	svc := newSMTPEmailService(SMTPConfig{
		FromAddress: "support@example.com",
		FromName:    "Support",
		BaseURL:     "https://portal.example.com",
	}, markdown.NewMarkdownService(), func(m *gomail.Message) error {
		sent = append(sent, m)
		return nil
	})

	err := svc.SendTicketNotification("admin@example.com", "Ticket #4 escalated", "Client says **site is down**", 4)
	require.NoError(t, err)
	require.Len(t, sent, 1)

	assert.Equal(t, []string{"admin@example.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Ticket #4 escalated"}, sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "<strong>site is down</strong>")
	assert.Contains(t, raw, "https://portal.example.com/tickets/4")
}

func TestSendTicketNotification_PlainPartKeepsBody(t *testing.T) {
	var sent []*gomail.Message
	svc := newSMTPEmailService(SMTPConfig{FromAddress: "support@example.com"}, markdown.NewMarkdownService(), func(m *gomail.Message) error {
		sent = append(sent, m)
		return nil
	})

	require.NoError(t, svc.SendTicketNotification("admin@example.com", "Ticket #5", "Costs <$50 and x<y", 5))
	require.Len(t, sent, 1)

	var buf bytes.Buffer
	_, err := sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Costs <$50 and x<y")
	assert.Contains(t, raw, "Costs &lt;$50 and x&lt;y")
}

func TestSendTicketNotification_Errors(t *testing.T) {
	svc := newSMTPEmailService(SMTPConfig{FromAddress: "support@example.com"}, markdown.NewMarkdownService(), func(m *gomail.Message) error {
		return errors.New("dial tcp: refused")
	})

	assert.Error(t, svc.SendTicketNotification("", "s", "b", 1))

	err := svc.SendTicketNotification("a@example.com", "s", "b", 1)
	assert.ErrorContains(t, err, "failed to send email")
}
