package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

const maxSubjectLength = 200

// Ticket is the aggregate root of a support conversation.
type Ticket struct {
	id             uint
	ownerID        uint
	projectID      *uint
	subject        string
	status         vo.TicketStatus
	priority       vo.Priority
	billable       bool
	sentimentScore int
	snoozeUntil    *time.Time
	source         vo.Source
	createdBy      uint
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	closedAt       *time.Time
}

// NewTicket opens a ticket owned by ownerID. Insight tickets start in ai_triage, all others in open.
func NewTicket(ownerID, createdBy uint, subject string, priority vo.Priority, source vo.Source) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if utf8.RuneCountInString(subject) > maxSubjectLength {
		return nil, fmt.Errorf("subject exceeds maximum length of %d characters", maxSubjectLength)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source")
	}

	status := vo.StatusOpen
	if source == vo.SourceInsight {
		status = vo.StatusAITriage
	}

	now := time.Now().UTC()
	return &Ticket{
		ownerID:   ownerID,
		subject:   subject,
		status:    status,
		priority:  priority,
		source:    source,
		createdBy: createdBy,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTicket(
	id uint,
	ownerID uint,
	projectID *uint,
	subject string,
	status vo.TicketStatus,
	priority vo.Priority,
	billable bool,
	sentimentScore int,
	snoozeUntil *time.Time,
	source vo.Source,
	createdBy uint,
	version int,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	return &Ticket{
		id:             id,
		ownerID:        ownerID,
		projectID:      projectID,
		subject:        subject,
		status:         status,
		priority:       priority,
		billable:       billable,
		sentimentScore: clampSentiment(sentimentScore),
		snoozeUntil:    snoozeUntil,
		source:         source,
		createdBy:      createdBy,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		closedAt:       closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) OwnerID() uint {
	return t.ownerID
}

func (t *Ticket) ProjectID() *uint {
	return t.projectID
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Billable() bool {
	return t.billable
}

func (t *Ticket) SentimentScore() int {
	return t.sentimentScore
}

func (t *Ticket) SnoozeUntil() *time.Time {
	return t.snoozeUntil
}

func (t *Ticket) Source() vo.Source {
	return t.source
}

func (t *Ticket) CreatedBy() uint {
	return t.createdBy
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.ownerID == userID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now().UTC()
	t.version++
}

// transitionTo is the single place status changes. Moving to the current status is a no-op.
func (t *Ticket) transitionTo(next vo.TicketStatus) (bool, error) {
	if t.status == next {
		return false, nil
	}
	if !t.status.CanTransitionTo(next) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, next)
	}
	t.status = next
	switch {
	case next.IsClosed():
		now := time.Now().UTC()
		t.closedAt = &now
	case t.closedAt != nil:
		t.closedAt = nil
	}
	return true, nil
}

// ApplyReply records that role posted a message and moves the status accordingly.
// It reports whether the status changed.
func (t *Ticket) ApplyReply(role authorization.UserRole, internal bool) (bool, error) {
	if t.status.IsClosed() {
		return false, ErrTicketClosed
	}
	if internal {
		if !role.IsStaff() {
			return false, ErrNotPermitted
		}
		t.touch()
		return false, nil
	}

	next := t.status
	switch {
	case role.IsStaff():
		if !t.status.IsEscalated() {
			next = vo.StatusWaitingClient
		}
	default:
		if !t.status.IsHumanOwned() {
			next = vo.StatusOpen
		}
	}

	changed, err := t.transitionTo(next)
	if err != nil {
		return false, err
	}
	t.touch()
	return changed, nil
}

// Close is allowed for admins on any ticket and for the owning client.
func (t *Ticket) Close(role authorization.UserRole, actorID uint) error {
	if !role.IsAdmin() && !(role.IsClient() && t.IsOwnedBy(actorID)) {
		return ErrNotPermitted
	}
	if t.status.IsClosed() {
		return fmt.Errorf("%w: ticket is already closed", ErrInvalidTransition)
	}
	if _, err := t.transitionTo(vo.StatusClosed); err != nil {
		return err
	}
	t.touch()
	return nil
}

// Reopen moves a closed ticket back to open. An escalated ticket can also be
// reopened, which hands it back to automated replies.
func (t *Ticket) Reopen(role authorization.UserRole, actorID uint) error {
	if !role.IsAdmin() && !(role.IsClient() && t.IsOwnedBy(actorID)) {
		return ErrNotPermitted
	}
	if !t.status.IsClosed() && !t.status.IsEscalated() {
		return fmt.Errorf("%w: only closed or escalated tickets can be reopened", ErrInvalidTransition)
	}
	if _, err := t.transitionTo(vo.StatusOpen); err != nil {
		return err
	}
	t.touch()
	return nil
}

// Escalate hands the ticket to a human. Escalating an escalated ticket is a no-op.
func (t *Ticket) Escalate() (bool, error) {
	if t.status.IsClosed() {
		return false, ErrTicketClosed
	}
	changed, err := t.transitionTo(vo.StatusEscalated)
	if err != nil {
		return false, err
	}
	if changed {
		t.touch()
	}
	return changed, nil
}

// AutoCloseIfIdle closes a waiting_client ticket whose last update is older than idleAfter.
func (t *Ticket) AutoCloseIfIdle(now time.Time, idleAfter time.Duration) bool {
	if !t.status.IsWaitingClient() || now.Sub(t.updatedAt) < idleAfter {
		return false
	}
	if _, err := t.transitionTo(vo.StatusClosed); err != nil {
		return false
	}
	t.touch()
	return true
}

// RecordSentiment scores text and adds it to the running score. Returns the new score.
func (t *Ticket) RecordSentiment(text string) int {
	delta := AnalyzeSentiment(text)
	if delta > 0 {
		t.sentimentScore = AccumulateSentiment(t.sentimentScore, delta)
	}
	return t.sentimentScore
}

// Snooze hides the ticket from listings until the given time. nil clears the snooze.
func (t *Ticket) Snooze(until *time.Time) {
	if until != nil {
		u := until.UTC()
		until = &u
	}
	t.snoozeUntil = until
	t.touch()
}

func (t *Ticket) IsSnoozed(now time.Time) bool {
	return t.snoozeUntil != nil && t.snoozeUntil.After(now)
}

func (t *Ticket) ChangePriority(p vo.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority: %s", p)
	}
	if t.priority == p {
		return nil
	}
	t.priority = p
	t.touch()
	return nil
}

func (t *Ticket) SetBillable(billable bool) {
	if t.billable == billable {
		return
	}
	t.billable = billable
	t.touch()
}

// LinkProject attaches the ticket to a project; nil detaches it.
func (t *Ticket) LinkProject(projectID *uint) {
	t.projectID = projectID
	t.touch()
}

// CloseNotice is the system message recorded when role closes a ticket.
func CloseNotice(role authorization.UserRole) string {
	if role.IsAdmin() {
		return "[System] Ticket closed by An Administrator."
	}
	return "[System] Ticket closed by The Client."
}

// InsightSeedMessages are the two system messages an insight ticket starts with.
func InsightSeedMessages(insight string) []string {
	return []string{
		"[System] This ticket was opened automatically from a dashboard insight.",
		"[Second Mate] " + strings.TrimSpace(insight),
	}
}
