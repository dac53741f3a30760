package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/mappers"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/db"
	apperrors "github.com/clientdesk/clientdesk/internal/shared/errors"
)

// listingOrder sorts by status rank, then priority rank, then age (oldest first).
var listingOrder = strings.Join([]string{
	rankCase("status", map[string]int{
		vo.StatusOpen.String():          vo.StatusOpen.ListRank(),
		vo.StatusWaitingClient.String(): vo.StatusWaitingClient.ListRank(),
		vo.StatusClosed.String():        vo.StatusClosed.ListRank(),
	}, vo.StatusEscalated.ListRank()),
	rankCase("priority", map[string]int{
		vo.PriorityUrgent.String(): vo.PriorityUrgent.Rank(),
		vo.PriorityHigh.String():   vo.PriorityHigh.Rank(),
		vo.PriorityNormal.String(): vo.PriorityNormal.Rank(),
		vo.PriorityLow.String():    vo.PriorityLow.Rank(),
	}, vo.Priority("").Rank()),
	"created_at ASC",
	"id ASC",
}, ", ")

// rankCase renders a CASE expression from fixed identifiers; ranks are emitted in ascending order.
func rankCase(column string, ranks map[string]int, fallback int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CASE %s", column)
	for rank := 1; rank < fallback; rank++ {
		for value, r := range ranks {
			if r == rank {
				fmt.Fprintf(&b, " WHEN '%s' THEN %d", value, r)
			}
		}
	}
	fmt.Fprintf(&b, " ELSE %d END", fallback)
	return b.String()
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so zero values (billable=false, cleared snooze) are written too.
	result := tx.Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	// RowsAffected may be 0 on MySQL when nothing changed, so it is not checked.
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *TicketRepository) get(tx *gorm.DB, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})

	if filter.OwnerIDs != nil {
		if len(filter.OwnerIDs) == 0 {
			return []*ticket.Ticket{}, 0, nil
		}
		query = query.Where("owner_id IN ?", filter.OwnerIDs)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if !filter.IncludeSnoozed {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.Where("(snooze_until IS NULL OR snooze_until <= ?)", now.UnixMilli())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.Order(listingOrder).Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, total, nil
}

func (r *TicketRepository) LastCreatedAtByOwner(ctx context.Context, ownerID uint) (*time.Time, error) {
	var last sql.NullInt64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("owner_id = ?", ownerID).
		Select("MAX(created_at)").
		Row().
		Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query last ticket time: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	t := time.UnixMilli(last.Int64).UTC()
	return &t, nil
}

func (r *TicketRepository) FindIdleWaitingClient(ctx context.Context, updatedBefore time.Time, limit int) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	query := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND updated_at < ?", vo.StatusWaitingClient.String(), updatedBefore.UnixMilli()).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find idle tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Append must run under the ticket's lock for the ordering guarantee to hold.
func (r *MessageRepository) Append(ctx context.Context, m *ticket.Message) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var last sql.NullInt64
	if err := tx.Model(&models.TicketMessageModel{}).
		Where("ticket_id = ?", m.TicketID()).
		Select("MAX(created_at)").
		Row().
		Scan(&last); err != nil {
		return fmt.Errorf("failed to read last message time: %w", err)
	}

	createdAt := m.CreatedAt().UnixMilli()
	if last.Valid && createdAt <= last.Int64 {
		createdAt = last.Int64 + 1
	}
	m.SetCreatedAt(time.UnixMilli(createdAt).UTC())

	model := r.mapper.MessageToModel(m)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID)
	if !includeInternal {
		query = query.Where("is_internal = ?", false)
	}

	var messageModels []models.TicketMessageModel
	if err := query.Order("created_at ASC, id ASC").Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(messageModels))
	for i := range messageModels {
		m, err := r.mapper.MessageToDomain(&messageModels[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *MessageRepository) Latest(ctx context.Context, ticketID uint) (*ticket.Message, error) {
	var model models.TicketMessageModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest message: %w", err)
	}
	if model.ID == 0 {
		return nil, nil
	}
	return r.mapper.MessageToDomain(&model)
}
