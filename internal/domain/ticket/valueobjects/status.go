package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen          TicketStatus = "open"
	StatusWaitingClient TicketStatus = "waiting_client"
	StatusEscalated     TicketStatus = "escalated"
	StatusAITriage      TicketStatus = "ai_triage"
	StatusClosed        TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:          true,
	StatusWaitingClient: true,
	StatusEscalated:     true,
	StatusAITriage:      true,
	StatusClosed:        true,
}

var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusWaitingClient,
		StatusEscalated,
		StatusClosed,
	},
	StatusWaitingClient: {
		StatusOpen,
		StatusEscalated,
		StatusClosed,
	},
	StatusEscalated: {
		StatusOpen,
		StatusClosed,
	},
	StatusAITriage: {
		StatusOpen,
		StatusWaitingClient,
		StatusEscalated,
		StatusClosed,
	},
	StatusClosed: {
		StatusOpen,
	},
}

// listRanks orders tickets in listings; statuses not present sort last.
var listRanks = map[TicketStatus]int{
	StatusOpen:          1,
	StatusWaitingClient: 2,
	StatusClosed:        3,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsWaitingClient() bool {
	return ts == StatusWaitingClient
}

func (ts TicketStatus) IsEscalated() bool {
	return ts == StatusEscalated
}

func (ts TicketStatus) IsAITriage() bool {
	return ts == StatusAITriage
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsHumanOwned reports whether automated replies are suspended for the ticket.
func (ts TicketStatus) IsHumanOwned() bool {
	return ts == StatusEscalated || ts == StatusAITriage
}

func (ts TicketStatus) ListRank() int {
	if rank, ok := listRanks[ts]; ok {
		return rank
	}
	return 4
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
