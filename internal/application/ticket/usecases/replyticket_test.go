package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

func newReplyUseCase(repo *mockTicketRepository, messages *mockMessageRepository, n *mockNotifier, esc EscalationRunner) *ReplyTicketUseCase {
	return NewReplyTicketUseCase(repo, messages, newMockDirectory(), newTestMutator(repo), n, esc, newTestLogger())
}

func TestReplyTicketUseCase_StatusTransitions(t *testing.T) {
	tests := []struct {
		name          string
		actor         authorization.Principal
		from          vo.TicketStatus
		internal      bool
		want          vo.TicketStatus
		wantEngineRun bool
	}{
		{name: "client on waiting_client reopens", actor: clientActor, from: vo.StatusWaitingClient, want: vo.StatusOpen, wantEngineRun: true},
		{name: "client on open stays open", actor: clientActor, from: vo.StatusOpen, want: vo.StatusOpen, wantEngineRun: true},
		{name: "client on escalated stays escalated", actor: clientActor, from: vo.StatusEscalated, want: vo.StatusEscalated},
		{name: "client on ai_triage stays ai_triage", actor: clientActor, from: vo.StatusAITriage, want: vo.StatusAITriage},
		{name: "admin on open waits for client", actor: adminActor, from: vo.StatusOpen, want: vo.StatusWaitingClient},
		{name: "partner on ai_triage waits for client", actor: partnerActor, from: vo.StatusAITriage, want: vo.StatusWaitingClient},
		{name: "admin on escalated stays escalated", actor: adminActor, from: vo.StatusEscalated, want: vo.StatusEscalated},
		{name: "internal note keeps status", actor: adminActor, from: vo.StatusOpen, internal: true, want: vo.StatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 9, clientActor.UserID, tt.from, time.Now())
			repo := repoWith(tk)
			messages := &mockMessageRepository{}
			esc := &mockEscalation{}

			result, err := newReplyUseCase(repo, messages, &mockNotifier{}, esc).Execute(context.Background(), ReplyTicketCommand{
				Actor:      tt.actor,
				TicketID:   9,
				Body:       "any update?",
				IsInternal: tt.internal,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), result.Status)
			assert.Equal(t, tt.from != tt.want, result.StatusChanged)
			assert.Equal(t, tt.want, tk.Status())
			require.Len(t, messages.Appended(), 1)
			assert.Equal(t, tt.internal, messages.Appended()[0].IsInternal())
			if tt.wantEngineRun {
				assert.Equal(t, []uint{9}, esc.runs)
			} else {
				assert.Empty(t, esc.runs)
			}
		})
	}
}

func TestReplyTicketUseCase_ClosedTicketRejectsReply(t *testing.T) {
	tk := newTestTicket(t, 9, clientActor.UserID, vo.StatusClosed, time.Now())
	repo := repoWith(tk)
	updated := false
	repo.UpdateFunc = func(context.Context, *ticket.Ticket) error {
		updated = true
		return nil
	}
	messages := &mockMessageRepository{}
	esc := &mockEscalation{}

	_, err := newReplyUseCase(repo, messages, &mockNotifier{}, esc).Execute(context.Background(), ReplyTicketCommand{
		Actor:    clientActor,
		TicketID: 9,
		Body:     "hello?",
	})

	require.Error(t, err)
	assert.True(t, errors.IsTicketClosedError(err))
	assert.False(t, updated)
	assert.Empty(t, messages.Appended())
	assert.Empty(t, esc.runs)
	assert.Equal(t, vo.StatusClosed, tk.Status())
}

func TestReplyTicketUseCase_AccessRules(t *testing.T) {
	tests := []struct {
		name     string
		actor    authorization.Principal
		ownerID  uint
		internal bool
	}{
		{name: "client on another client's ticket", actor: clientActor, ownerID: 6},
		{name: "partner on unassigned client", actor: authorization.Principal{UserID: 3, Role: authorization.RolePartner}, ownerID: 5},
		{name: "client internal note", actor: clientActor, ownerID: 5, internal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 9, tt.ownerID, vo.StatusOpen, time.Now())
			messages := &mockMessageRepository{}

			_, err := newReplyUseCase(repoWith(tk), messages, &mockNotifier{}, &mockEscalation{}).Execute(context.Background(), ReplyTicketCommand{
				Actor:      tt.actor,
				TicketID:   9,
				Body:       "hi",
				IsInternal: tt.internal,
			})

			require.Error(t, err)
			assert.True(t, errors.IsForbiddenError(err))
			assert.Empty(t, messages.Appended())
		})
	}
}

func TestReplyTicketUseCase_ClientSentimentAccumulates(t *testing.T) {
	tk := newTestTicket(t, 9, clientActor.UserID, vo.StatusOpen, time.Now())
	n := &mockNotifier{}
	uc := newReplyUseCase(repoWith(tk), &mockMessageRepository{}, n, nil)

	_, err := uc.Execute(context.Background(), ReplyTicketCommand{Actor: clientActor, TicketID: 9, Body: "I want a refund"})
	require.NoError(t, err)
	assert.Equal(t, 50, tk.SentimentScore())

	_, err = uc.Execute(context.Background(), ReplyTicketCommand{Actor: clientActor, TicketID: 9, Body: "I am frustrated, cancel it"})
	require.NoError(t, err)
	assert.Equal(t, 100, tk.SentimentScore())

	alerts := 0
	for _, c := range n.calls {
		if c.Target.IsAllAdmins() {
			alerts++
		}
	}
	assert.Equal(t, 1, alerts)
}

func TestReplyTicketUseCase_StaffReplyDoesNotScore(t *testing.T) {
	tk := newTestTicket(t, 9, clientActor.UserID, vo.StatusOpen, time.Now())

	_, err := newReplyUseCase(repoWith(tk), &mockMessageRepository{}, &mockNotifier{}, nil).Execute(context.Background(), ReplyTicketCommand{
		Actor:    adminActor,
		TicketID: 9,
		Body:     "the refund is urgent on our side too",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, tk.SentimentScore())
}

func TestReplyTicketUseCase_StatusReflectsEscalation(t *testing.T) {
	tk := newTestTicket(t, 9, clientActor.UserID, vo.StatusOpen, time.Now())
	esc := &mockEscalation{RunFunc: func(context.Context, uint) {
		_, err := tk.Escalate()
		require.NoError(t, err)
	}}

	result, err := newReplyUseCase(repoWith(tk), &mockMessageRepository{}, &mockNotifier{}, esc).Execute(context.Background(), ReplyTicketCommand{
		Actor:    clientActor,
		TicketID: 9,
		Body:     "my screenshot",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusEscalated.String(), result.Status)
	assert.True(t, result.StatusChanged)
}
