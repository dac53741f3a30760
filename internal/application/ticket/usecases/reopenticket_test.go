package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

func TestReopenTicketUseCase_Execute(t *testing.T) {
	tests := []struct {
		name    string
		actor   authorization.Principal
		from    vo.TicketStatus
		wantErr func(error) bool
	}{
		{name: "client reopens closed ticket", actor: clientActor, from: vo.StatusClosed},
		{name: "admin resets escalated ticket", actor: adminActor, from: vo.StatusEscalated},
		{name: "client resets escalated ticket", actor: clientActor, from: vo.StatusEscalated},
		{name: "partner cannot reopen", actor: partnerActor, from: vo.StatusClosed, wantErr: errors.IsForbiddenError},
		{name: "open ticket cannot be reopened", actor: adminActor, from: vo.StatusOpen, wantErr: errors.IsConflictError},
		{name: "ai_triage cannot be reopened", actor: adminActor, from: vo.StatusAITriage, wantErr: errors.IsConflictError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 9, clientActor.UserID, tt.from, time.Now())
			repo := repoWith(tk)
			n := &mockNotifier{}
			uc := NewReopenTicketUseCase(repo, newMockDirectory(), newTestMutator(repo), n, newTestLogger())

			result, err := uc.Execute(context.Background(), ReopenTicketCommand{Actor: tt.actor, TicketID: 9})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Equal(t, tt.from, tk.Status())
				assert.Empty(t, n.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusOpen.String(), result.Status)
			assert.Nil(t, result.ClosedAt)
			require.Len(t, n.events, 1)
			assert.Equal(t, tt.from.String(), n.events[0].OldStatus)
		})
	}
}
