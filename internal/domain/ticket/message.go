package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const maxMessageLength = 10000

type SenderKind string

const (
	SenderHuman  SenderKind = "human"
	SenderSystem SenderKind = "system"
)

// Sender identifies who wrote a message: a real user or the automated system.
type Sender struct {
	kind   SenderKind
	userID uint
}

func HumanSender(userID uint) Sender {
	return Sender{kind: SenderHuman, userID: userID}
}

func SystemSender() Sender {
	return Sender{kind: SenderSystem}
}

func (s Sender) Kind() SenderKind {
	return s.kind
}

// UserID is zero for system senders.
func (s Sender) UserID() uint {
	return s.userID
}

func (s Sender) IsSystem() bool {
	return s.kind == SenderSystem
}

// MessageMeta is free-form bookkeeping stored next to a message.
type MessageMeta struct {
	Kind        string `json:"kind,omitempty"`
	ScriptIndex int    `json:"script_index,omitempty"`
	ScriptSize  int    `json:"script_size,omitempty"`
}

// Message is an append-only entry in a ticket thread.
type Message struct {
	id            uint
	ticketID      uint
	sender        Sender
	body          string
	isInternal    bool
	attachmentRef string
	revealDelay   time.Duration
	meta          MessageMeta
	createdAt     time.Time
}

// NewMessage builds a message authored by a user. Either body or attachmentRef must be set.
func NewMessage(ticketID uint, authorID uint, body string, isInternal bool, attachmentRef string) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if err := validateBody(body, attachmentRef); err != nil {
		return nil, err
	}
	return &Message{
		ticketID:      ticketID,
		sender:        HumanSender(authorID),
		body:          body,
		isInternal:    isInternal,
		attachmentRef: attachmentRef,
		createdAt:     time.Now().UTC(),
	}, nil
}

// NewSystemMessage builds a client-visible message authored by the system.
// revealDelay tells clients how long to hold the message back before showing it.
func NewSystemMessage(ticketID uint, body string, revealDelay time.Duration, meta MessageMeta) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if err := validateBody(body, ""); err != nil {
		return nil, err
	}
	if revealDelay < 0 {
		revealDelay = 0
	}
	return &Message{
		ticketID:    ticketID,
		sender:      SystemSender(),
		body:        body,
		revealDelay: revealDelay,
		meta:        meta,
		createdAt:   time.Now().UTC(),
	}, nil
}

func validateBody(body, attachmentRef string) error {
	if body == "" && attachmentRef == "" {
		return fmt.Errorf("message body cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", maxMessageLength)
	}
	return nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	sender Sender,
	body string,
	isInternal bool,
	attachmentRef string,
	revealDelay time.Duration,
	meta MessageMeta,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if sender.kind != SenderHuman && sender.kind != SenderSystem {
		return nil, fmt.Errorf("invalid sender kind: %s", sender.kind)
	}
	return &Message{
		id:            id,
		ticketID:      ticketID,
		sender:        sender,
		body:          body,
		isInternal:    isInternal,
		attachmentRef: attachmentRef,
		revealDelay:   revealDelay,
		meta:          meta,
		createdAt:     createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) Sender() Sender {
	return m.sender
}

func (m *Message) Body() string {
	return m.body
}

func (m *Message) IsInternal() bool {
	return m.isInternal
}

func (m *Message) AttachmentRef() string {
	return m.attachmentRef
}

func (m *Message) RevealDelay() time.Duration {
	return m.revealDelay
}

func (m *Message) Meta() MessageMeta {
	return m.meta
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// SetID is called once by the store after insert.
func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// SetCreatedAt lets the store move the timestamp forward to keep thread order strict.
func (m *Message) SetCreatedAt(t time.Time) {
	m.createdAt = t
}
