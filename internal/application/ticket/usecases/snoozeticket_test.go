package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

func TestSnoozeTicketUseCase_SetAndClear(t *testing.T) {
	tk := newTestTicket(t, 9, clientActor.UserID, vo.StatusOpen, time.Now())
	repo := repoWith(tk)
	uc := NewSnoozeTicketUseCase(repo, newMockDirectory(), newTestMutator(repo), newTestLogger())

	until := time.Now().Add(24 * time.Hour)
	result, err := uc.Execute(context.Background(), SnoozeTicketCommand{Actor: partnerActor, TicketID: 9, Until: &until})
	require.NoError(t, err)
	require.NotNil(t, result.SnoozeUntil)
	assert.True(t, tk.IsSnoozed(time.Now()))

	result, err = uc.Execute(context.Background(), SnoozeTicketCommand{Actor: adminActor, TicketID: 9})
	require.NoError(t, err)
	assert.Nil(t, result.SnoozeUntil)
}

func TestSnoozeTicketUseCase_Rejections(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		cmd    SnoozeTicketCommand
		status vo.TicketStatus
		check  func(error) bool
	}{
		{name: "client cannot snooze", cmd: SnoozeTicketCommand{Actor: clientActor, TicketID: 9, Until: &future}, status: vo.StatusOpen, check: errors.IsForbiddenError},
		{name: "past time", cmd: SnoozeTicketCommand{Actor: adminActor, TicketID: 9, Until: &past}, status: vo.StatusOpen, check: errors.IsValidationError},
		{name: "closed ticket", cmd: SnoozeTicketCommand{Actor: adminActor, TicketID: 9, Until: &future}, status: vo.StatusClosed, check: errors.IsTicketClosedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 9, clientActor.UserID, tt.status, time.Now())
			repo := repoWith(tk)

			_, err := NewSnoozeTicketUseCase(repo, newMockDirectory(), newTestMutator(repo), newTestLogger()).
				Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Nil(t, tk.SnoozeUntil())
		})
	}
}
