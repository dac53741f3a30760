package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
)

// TicketMapper converts tickets and their messages between domain and persistence.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.TicketMessageModel
	MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             t.ID(),
		OwnerID:        t.OwnerID(),
		ProjectID:      t.ProjectID(),
		Subject:        t.Subject(),
		Status:         t.Status().String(),
		Priority:       t.Priority().String(),
		Billable:       t.Billable(),
		SentimentScore: t.SentimentScore(),
		SnoozeUntil:    timePtrToMillis(t.SnoozeUntil()),
		Source:         t.Source().String(),
		CreatedBy:      t.CreatedBy(),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
		ClosedAt:       timePtrToMillis(t.ClosedAt()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	source, err := vo.NewSource(model.Source)
	if err != nil {
		source = vo.SourceClient
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.OwnerID,
		model.ProjectID,
		model.Subject,
		status,
		priority,
		model.Billable,
		model.SentimentScore,
		millisPtrToTime(model.SnoozeUntil),
		source,
		model.CreatedBy,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisPtrToTime(model.ClosedAt),
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.TicketMessageModel {
	model := &models.TicketMessageModel{
		ID:            msg.ID(),
		TicketID:      msg.TicketID(),
		SenderKind:    string(msg.Sender().Kind()),
		Body:          msg.Body(),
		IsInternal:    msg.IsInternal(),
		AttachmentRef: msg.AttachmentRef(),
		RevealDelayMs: msg.RevealDelay().Milliseconds(),
		CreatedAt:     msg.CreatedAt().UnixMilli(),
	}
	if !msg.Sender().IsSystem() {
		id := msg.Sender().UserID()
		model.SenderID = &id
	}
	if meta := msg.Meta(); meta != (ticket.MessageMeta{}) {
		raw, _ := json.Marshal(meta)
		model.Meta = datatypes.JSON(raw)
	}
	return model
}

func (m *TicketMapperImpl) MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error) {
	sender := ticket.SystemSender()
	if ticket.SenderKind(model.SenderKind) == ticket.SenderHuman {
		if model.SenderID == nil {
			return nil, fmt.Errorf("message %d: human sender without sender_id", model.ID)
		}
		sender = ticket.HumanSender(*model.SenderID)
	}

	var meta ticket.MessageMeta
	if len(model.Meta) > 0 {
		if err := json.Unmarshal(model.Meta, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message meta (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		sender,
		model.Body,
		model.IsInternal,
		model.AttachmentRef,
		time.Duration(model.RevealDelayMs)*time.Millisecond,
		meta,
		millisToTime(model.CreatedAt),
	)
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func millisPtrToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := millisToTime(*ms)
	return &t
}

func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
