package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/db"
	apperrors "github.com/clientdesk/clientdesk/internal/shared/errors"
)

func saveTicket(t *testing.T, repo *TicketRepository, ownerID uint, subject string, priority vo.Priority) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ownerID, ownerID, subject, priority, vo.SourceClient)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), tk))
	return tk
}

func setTicketColumns(t *testing.T, gdb *gorm.DB, id uint, values map[string]interface{}) {
	t.Helper()
	require.NoError(t, gdb.Model(&models.TicketModel{}).Where("id = ?", id).Updates(values).Error)
}

func TestTicketRepository_SaveAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := saveTicket(t, repo, 5, "Billing question", vo.PriorityNormal)
	assert.NotZero(t, tk.ID())

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, "Billing question", found.Subject())
	assert.Equal(t, vo.StatusOpen, found.Status())
	assert.Equal(t, tk.CreatedAt().UnixMilli(), found.CreatedAt().UnixMilli())

	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketRepository_UpdateWritesZeroValues(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := saveTicket(t, repo, 5, "Invoice", vo.PriorityNormal)
	until := time.Now().Add(time.Hour)
	tk.SetBillable(true)
	tk.Snooze(&until)
	tk.RecordSentiment("refund")
	require.NoError(t, repo.Update(ctx, tk))

	tk.SetBillable(false)
	tk.Snooze(nil)
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.False(t, found.Billable())
	assert.Nil(t, found.SnoozeUntil())
	assert.Equal(t, 50, found.SentimentScore())
	assert.Equal(t, tk.Version(), found.Version())
}

func TestTicketRepository_GetByIDForUpdateInTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	tk := saveTicket(t, repo, 5, "Locked", vo.PriorityNormal)

	err := db.NewTransactionManager(gdb).RunInTransaction(context.Background(), func(ctx context.Context) error {
		locked, err := repo.GetByIDForUpdate(ctx, tk.ID())
		if err != nil {
			return err
		}
		if _, err := locked.ApplyReply(authorization.RoleAdmin, false); err != nil {
			return err
		}
		return repo.Update(ctx, locked)
	})
	require.NoError(t, err)

	found, err := repo.GetByID(context.Background(), tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusWaitingClient, found.Status())
}

func TestTicketRepository_ListOrderingAndSnooze(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	closedUrgent := saveTicket(t, repo, 1, "closed urgent", vo.PriorityUrgent)
	setTicketColumns(t, gdb, closedUrgent.ID(), map[string]interface{}{"status": "closed", "created_at": base})

	waitingHigh := saveTicket(t, repo, 1, "waiting high", vo.PriorityHigh)
	setTicketColumns(t, gdb, waitingHigh.ID(), map[string]interface{}{"status": "waiting_client", "created_at": base})

	openLowOld := saveTicket(t, repo, 2, "open low old", vo.PriorityLow)
	setTicketColumns(t, gdb, openLowOld.ID(), map[string]interface{}{"created_at": base})

	openUrgentNew := saveTicket(t, repo, 2, "open urgent new", vo.PriorityUrgent)
	setTicketColumns(t, gdb, openUrgentNew.ID(), map[string]interface{}{"created_at": base + 5000})

	openUrgentOld := saveTicket(t, repo, 3, "open urgent old", vo.PriorityUrgent)
	setTicketColumns(t, gdb, openUrgentOld.ID(), map[string]interface{}{"created_at": base + 1000})

	escalated := saveTicket(t, repo, 3, "escalated", vo.PriorityUrgent)
	setTicketColumns(t, gdb, escalated.ID(), map[string]interface{}{"status": "escalated", "created_at": base})

	snoozed := saveTicket(t, repo, 3, "snoozed", vo.PriorityUrgent)
	setTicketColumns(t, gdb, snoozed.ID(), map[string]interface{}{"snooze_until": time.Now().Add(time.Hour).UnixMilli()})

	expired := saveTicket(t, repo, 3, "snooze expired", vo.PriorityNormal)
	setTicketColumns(t, gdb, expired.ID(), map[string]interface{}{"snooze_until": time.Now().Add(-time.Hour).UnixMilli(), "created_at": base})

	tickets, total, err := repo.List(ctx, ticket.TicketFilter{Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	subjects := make([]string, 0, len(tickets))
	for _, tk := range tickets {
		subjects = append(subjects, tk.Subject())
	}
	assert.Equal(t, []string{
		"open urgent old",
		"open urgent new",
		"snooze expired",
		"open low old",
		"waiting high",
		"closed urgent",
		"escalated",
	}, subjects)

	own, total, err := repo.List(ctx, ticket.TicketFilter{OwnerIDs: []uint{1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, own, 2)

	none, total, err := repo.List(ctx, ticket.TicketFilter{OwnerIDs: []uint{}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)

	withSnoozed, _, err := repo.List(ctx, ticket.TicketFilter{IncludeSnoozed: true})
	require.NoError(t, err)
	assert.Len(t, withSnoozed, 8)
}

func TestTicketRepository_LastCreatedAtByOwner(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	last, err := repo.LastCreatedAtByOwner(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, last)

	tk := saveTicket(t, repo, 5, "first", vo.PriorityNormal)
	last, err = repo.LastCreatedAtByOwner(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, tk.CreatedAt().UnixMilli(), last.UnixMilli())
}

func TestTicketRepository_FindIdleWaitingClient(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	now := time.Now()

	stale := saveTicket(t, repo, 5, "stale", vo.PriorityNormal)
	setTicketColumns(t, gdb, stale.ID(), map[string]interface{}{"status": "waiting_client", "updated_at": now.Add(-8 * 24 * time.Hour).UnixMilli()})

	fresh := saveTicket(t, repo, 5, "fresh", vo.PriorityNormal)
	setTicketColumns(t, gdb, fresh.ID(), map[string]interface{}{"status": "waiting_client", "updated_at": now.Add(-6 * 24 * time.Hour).UnixMilli()})

	staleOpen := saveTicket(t, repo, 5, "stale open", vo.PriorityNormal)
	setTicketColumns(t, gdb, staleOpen.ID(), map[string]interface{}{"updated_at": now.Add(-30 * 24 * time.Hour).UnixMilli()})

	idle, err := repo.FindIdleWaitingClient(context.Background(), now.Add(-7*24*time.Hour), 100)
	require.NoError(t, err)
	require.Len(t, idle, 1)
	assert.Equal(t, stale.ID(), idle[0].ID())
}

func TestMessageRepository_AppendKeepsStrictOrder(t *testing.T) {
	gdb := setupTestDB(t)
	tickets := NewTicketRepository(gdb)
	repo := NewMessageRepository(gdb)
	ctx := context.Background()
	tk := saveTicket(t, tickets, 5, "thread", vo.PriorityNormal)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var previous int64
	for i := 0; i < 3; i++ {
		msg, err := ticket.NewSystemMessage(tk.ID(), "[Second Mate] step", 0, ticket.MessageMeta{Kind: "escalate", ScriptIndex: i})
		require.NoError(t, err)
		msg.SetCreatedAt(fixed)
		require.NoError(t, repo.Append(ctx, msg))
		assert.NotZero(t, msg.ID())
		assert.Greater(t, msg.CreatedAt().UnixMilli(), previous)
		previous = msg.CreatedAt().UnixMilli()
	}

	backdated, err := ticket.NewMessage(tk.ID(), 5, "late", false, "")
	require.NoError(t, err)
	backdated.SetCreatedAt(fixed.Add(-time.Hour))
	require.NoError(t, repo.Append(ctx, backdated))
	assert.Equal(t, previous+1, backdated.CreatedAt().UnixMilli())

	note, err := ticket.NewMessage(tk.ID(), 1, "internal", true, "")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, note))

	all, err := repo.ListByTicket(ctx, tk.ID(), true)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].CreatedAt().After(all[i-1].CreatedAt()))
	}

	visible, err := repo.ListByTicket(ctx, tk.ID(), false)
	require.NoError(t, err)
	assert.Len(t, visible, 4)

	latest, err := repo.Latest(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, note.ID(), latest.ID())
}

func TestMessageRepository_LatestEmpty(t *testing.T) {
	repo := NewMessageRepository(setupTestDB(t))
	latest, err := repo.Latest(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, latest)
}
