package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from TicketStatus
		to   TicketStatus
		want bool
	}{
		{StatusOpen, StatusWaitingClient, true},
		{StatusOpen, StatusEscalated, true},
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusAITriage, false},
		{StatusWaitingClient, StatusOpen, true},
		{StatusWaitingClient, StatusEscalated, true},
		{StatusWaitingClient, StatusClosed, true},
		{StatusEscalated, StatusOpen, true},
		{StatusEscalated, StatusClosed, true},
		{StatusEscalated, StatusWaitingClient, false},
		{StatusAITriage, StatusOpen, true},
		{StatusAITriage, StatusWaitingClient, true},
		{StatusAITriage, StatusEscalated, true},
		{StatusAITriage, StatusClosed, true},
		{StatusClosed, StatusOpen, true},
		{StatusClosed, StatusWaitingClient, false},
		{StatusClosed, StatusEscalated, false},
		{TicketStatus("bogus"), StatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTicketStatus_ListRank(t *testing.T) {
	assert.Equal(t, 1, StatusOpen.ListRank())
	assert.Equal(t, 2, StatusWaitingClient.ListRank())
	assert.Equal(t, 3, StatusClosed.ListRank())
	assert.Equal(t, 4, StatusEscalated.ListRank())
	assert.Equal(t, 4, StatusAITriage.ListRank())
}

func TestTicketStatus_IsHumanOwned(t *testing.T) {
	assert.True(t, StatusEscalated.IsHumanOwned())
	assert.True(t, StatusAITriage.IsHumanOwned())
	assert.False(t, StatusOpen.IsHumanOwned())
	assert.False(t, StatusWaitingClient.IsHumanOwned())
	assert.False(t, StatusClosed.IsHumanOwned())
}

func TestNewTicketStatus(t *testing.T) {
	s, err := NewTicketStatus("waiting_client")
	require.NoError(t, err)
	assert.Equal(t, StatusWaitingClient, s)

	_, err = NewTicketStatus("resolved")
	assert.Error(t, err)
}

func TestPriority(t *testing.T) {
	p, err := NewPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNormal, p)

	_, err = NewPriority("medium")
	assert.Error(t, err)

	assert.Less(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityNormal.Rank())
	assert.Less(t, PriorityNormal.Rank(), PriorityLow.Rank())
}
