package escalation

import (
	"fmt"
	"strings"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
)

const unavailable = "unavailable"

const (
	labelClient    = "Client"
	labelSupport   = "Support Team"
	labelAssistant = "Second Mate (AI)"
)

// Dossier describes the client to the model. Missing fields read "unavailable".
type Dossier struct {
	Name     string
	Business string
	Email    string
	Billing  string
}

func (d Dossier) render() string {
	return fmt.Sprintf("Name: %s\nBusiness: %s\nEmail: %s\nLatest invoice: %s",
		orUnavailable(d.Name), orUnavailable(d.Business), orUnavailable(d.Email), orUnavailable(d.Billing))
}

func orUnavailable(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unavailable
	}
	return s
}

// BuildSystemPrompt states the persona, the knowledge base and the output contract.
func BuildSystemPrompt(kb *KnowledgeBase, knowledge string) string {
	company, assistant := "our agency", "Second Mate"
	if kb != nil {
		if kb.Company != "" {
			company = kb.Company
		}
		if kb.Assistant != "" {
			assistant = kb.Assistant
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, the first-line support assistant for %s. ", assistant, company)
	b.WriteString("You answer clients in a support ticket thread. Be brief, friendly and concrete. ")
	b.WriteString("Never invent prices, dates or promises that the knowledge base does not state.\n\n")

	b.WriteString("# Knowledge base\n")
	b.WriteString(knowledge)
	b.WriteString("\n\n")

	b.WriteString("# Output format\n")
	b.WriteString("Respond with exactly one JSON object and nothing else:\n")
	b.WriteString(`{"kind": "reply" | "escalate" | "media_issue", "messages": ["..."]}` + "\n")
	fmt.Fprintf(&b, "- reply: a single message answering a simple question. Start it with [%s].\n", assistant)
	b.WriteString("- escalate: 2 or 3 messages forming a work order. Prefix each with a persona label in square brackets ")
	b.WriteString("and end with a notice that a human from the support team will take over.\n")
	b.WriteString("- media_issue: you cannot read an attachment or cannot understand the request. Leave messages empty.\n")
	return b.String()
}

// BuildUserPrompt renders the dossier and the full visible transcript.
// Messages from ownerID are labelled as the client, other humans as the support team.
func BuildUserPrompt(dossier Dossier, t *ticket.Ticket, transcript []*ticket.Message) string {
	var b strings.Builder
	b.WriteString("# Client dossier\n")
	b.WriteString(dossier.render())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "# Ticket #%d: %s\nPriority: %s\nStatus: %s\n\n", t.ID(), t.Subject(), t.Priority(), t.Status())

	b.WriteString("# Transcript\n")
	for _, m := range transcript {
		if m.IsInternal() {
			continue
		}
		fmt.Fprintf(&b, "%s: %s", senderLabel(m, t.OwnerID()), strings.TrimSpace(m.Body()))
		if ref := m.AttachmentRef(); ref != "" {
			fmt.Fprintf(&b, " [attachment: %s]", ref)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nWrite the next support message.")
	return b.String()
}

func senderLabel(m *ticket.Message, ownerID uint) string {
	switch {
	case m.Sender().IsSystem():
		return labelAssistant
	case m.Sender().UserID() == ownerID:
		return labelClient
	default:
		return labelSupport
	}
}
