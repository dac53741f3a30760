// Package escalation produces automated replies on client tickets and hands
// tickets to humans when the model asks for it.
package escalation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
	"github.com/clientdesk/clientdesk/internal/shared/goroutine"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const (
	maxScriptMessageLength = 4000

	// HandOffMessage is posted when the model cannot read what the client sent.
	HandOffMessage = "[System] I couldn't read that attachment, so I've passed your ticket to our support team. A human will follow up shortly."
)

// Completer is satisfied by *ai.Gateway.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// BillingClient is satisfied by the billing package clients.
type BillingClient interface {
	LatestInvoiceSummary(ctx context.Context, customerID string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, target notify.Target, message, targetType string, targetID uint)
	PublishEvent(ctx context.Context, evt ticket.Event)
}

type TicketMutator interface {
	Mutate(ctx context.Context, ticketID uint, fn func(txCtx context.Context, t *ticket.Ticket) error) (*ticket.Ticket, error)
}

type Config struct {
	ThinkingDelay time.Duration
	SpacingDelay  time.Duration
}

// Skip reasons reported in Outcome.
const (
	SkipSilenced  = "silenced"
	SkipClosed    = "closed"
	SkipLoopGuard = "loop_guard"
	SkipNoMessage = "no_message"
	SkipEmpty     = "empty_script"
)

// Outcome describes what one run did.
type Outcome struct {
	Skipped       string
	Kind          Kind
	Appended      int
	StatusChanged bool
}

var errSkip = errors.New("escalation skipped")

type Engine struct {
	tickets   ticket.TicketRepository
	messages  ticket.MessageRepository
	users     user.Directory
	mutator   TicketMutator
	completer Completer
	billing   BillingClient
	notifier  Notifier
	knowledge *KnowledgeBase
	cfg       Config
	logger    logger.Interface
}

func NewEngine(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	users user.Directory,
	mutator TicketMutator,
	completer Completer,
	billing BillingClient,
	notifier Notifier,
	knowledge *KnowledgeBase,
	cfg Config,
	logger logger.Interface,
) *Engine {
	return &Engine{
		tickets:   tickets,
		messages:  messages,
		users:     users,
		mutator:   mutator,
		completer: completer,
		billing:   billing,
		notifier:  notifier,
		knowledge: knowledge,
		cfg:       cfg,
		logger:    logger.Named("escalation"),
	}
}

// Run processes the ticket and logs instead of returning errors. Panics are recovered.
func (e *Engine) Run(ctx context.Context, ticketID uint) {
	goroutine.Run(e.logger, "escalation", func() {
		outcome, err := e.Process(ctx, ticketID)
		if err != nil {
			e.logger.Warnw("automated reply failed", "ticket_id", ticketID, "error", err)
			return
		}
		if outcome.Skipped != "" {
			e.logger.Debugw("automated reply skipped", "ticket_id", ticketID, "reason", outcome.Skipped)
			return
		}
		e.logger.Infow("automated reply posted",
			"ticket_id", ticketID,
			"kind", outcome.Kind,
			"messages", outcome.Appended,
			"status_changed", outcome.StatusChanged,
		)
	})
}

// Process runs one escalation pass. A non-nil error means nothing was written.
func (e *Engine) Process(ctx context.Context, ticketID uint) (*Outcome, error) {
	t, err := e.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if reason := e.guard(ctx, t); reason != "" {
		return &Outcome{Skipped: reason}, nil
	}

	transcript, err := e.messages.ListByTicket(ctx, t.ID(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	dossier := e.dossier(ctx, t.OwnerID())
	system := BuildSystemPrompt(e.knowledge, e.knowledge.Snippet(knowledgeQuery(t, transcript)))
	prompt := BuildUserPrompt(dossier, t, transcript)

	raw, err := e.completer.Complete(ctx, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to complete: %w", err)
	}

	script := e.clean(ParseResponse(raw))
	if script.Kind == KindMediaIssue {
		script.Messages = []string{HandOffMessage}
	}
	if len(script.Messages) == 0 {
		return &Outcome{Skipped: SkipEmpty}, nil
	}

	outcome := &Outcome{Kind: script.Kind}
	var oldStatus string
	final, err := e.mutator.Mutate(ctx, ticketID, func(txCtx context.Context, locked *ticket.Ticket) error {
		// The ticket may have changed while the model was thinking.
		if reason := e.guard(txCtx, locked); reason != "" {
			outcome.Skipped = reason
			return errSkip
		}
		before := locked.Status()
		oldStatus = before.String()

		delays := RevealDelays(len(script.Messages), e.cfg.ThinkingDelay, e.cfg.SpacingDelay)
		for i, body := range script.Messages {
			m, err := ticket.NewSystemMessage(locked.ID(), body, delays[i], ticket.MessageMeta{
				Kind:        string(script.Kind),
				ScriptIndex: i,
				ScriptSize:  len(script.Messages),
			})
			if err != nil {
				return fmt.Errorf("failed to build message: %w", err)
			}
			if err := e.messages.Append(txCtx, m); err != nil {
				return fmt.Errorf("failed to save message: %w", err)
			}
			outcome.Appended++
		}

		if script.Escalates() {
			if _, err := locked.Escalate(); err != nil {
				return fmt.Errorf("failed to escalate: %w", err)
			}
		}
		if locked.Status() != before {
			if err := e.tickets.Update(txCtx, locked); err != nil {
				return fmt.Errorf("failed to update ticket: %w", err)
			}
			outcome.StatusChanged = true
		}
		return nil
	})
	if errors.Is(err, errSkip) {
		return &Outcome{Skipped: outcome.Skipped}, nil
	}
	if err != nil {
		return nil, err
	}

	e.announce(ctx, final, script, oldStatus, outcome.StatusChanged)
	return outcome, nil
}

// guard returns a skip reason, or "" when the engine may reply.
func (e *Engine) guard(ctx context.Context, t *ticket.Ticket) string {
	switch {
	case t.Status().IsClosed():
		return SkipClosed
	case t.Status().IsHumanOwned():
		return SkipSilenced
	}
	latest, err := e.messages.Latest(ctx, t.ID())
	if err != nil || latest == nil {
		return SkipNoMessage
	}
	if latest.Sender().IsSystem() {
		return SkipLoopGuard
	}
	return ""
}

func (e *Engine) dossier(ctx context.Context, ownerID uint) Dossier {
	owner, err := e.users.GetByID(ctx, ownerID)
	if err != nil {
		e.logger.Warnw("client dossier unavailable", "owner_id", ownerID, "error", err)
		return Dossier{}
	}
	d := Dossier{Name: owner.Name, Business: owner.Business, Email: owner.Email}
	if e.billing != nil && owner.ExternalCustomerID != "" {
		summary, err := e.billing.LatestInvoiceSummary(ctx, owner.ExternalCustomerID)
		if err != nil {
			e.logger.Debugw("billing summary unavailable", "owner_id", ownerID, "error", err)
		} else {
			d.Billing = summary
		}
	}
	return d
}

// clean keeps message text as the model wrote it. Markup is sanitized when rendered.
func (e *Engine) clean(s Script) Script {
	out := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if n := utf8.RuneCountInString(m); n > maxScriptMessageLength {
			e.logger.Warnw("automated message truncated", "runes", n, "limit", maxScriptMessageLength)
			m = string([]rune(m)[:maxScriptMessageLength])
		}
		out = append(out, m)
	}
	s.Messages = out
	return s
}

func (e *Engine) announce(ctx context.Context, t *ticket.Ticket, script Script, oldStatus string, statusChanged bool) {
	e.notifier.PublishEvent(ctx, ticket.NewTicketRepliedEvent(t, 0))
	if statusChanged {
		e.notifier.PublishEvent(ctx, ticket.NewStatusChangedEvent(t, oldStatus, 0))
	}

	switch {
	case script.Kind == KindMediaIssue:
		e.notifier.Notify(ctx, notify.AllAdmins,
			fmt.Sprintf("Ticket #%d needs a human: the assistant could not read the client's message", t.ID()),
			notify.TargetTypeTicket, t.ID())
	case script.Kind == KindEscalate && MentionsHuman(script.Messages):
		e.notifier.Notify(ctx, notify.AllAdmins,
			fmt.Sprintf("Ticket #%d was escalated by the assistant: %s", t.ID(), t.Subject()),
			notify.TargetTypeTicket, t.ID())
	}
}

// RevealDelays is the hold-back for each of n script messages: the first shows at once,
// every later one after a thinking pause plus the fixed spacing.
func RevealDelays(n int, thinking, spacing time.Duration) []time.Duration {
	delays := make([]time.Duration, n)
	for i := 1; i < n; i++ {
		delays[i] = thinking + spacing
	}
	return delays
}

// knowledgeQuery is the text used to rank knowledge base topics.
func knowledgeQuery(t *ticket.Ticket, transcript []*ticket.Message) string {
	q := t.Subject()
	if n := len(transcript); n > 0 {
		q += " " + transcript[n-1].Body()
	}
	return q
}
