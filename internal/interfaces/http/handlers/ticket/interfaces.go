package ticket

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/application/ticket/usecases"
)

// Use case interfaces for TicketHandler - enables unit testing with mocks.

type createTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error)
}

type replyTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.ReplyTicketCommand) (*usecases.ReplyTicketResult, error)
}

type closeTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CloseTicketCommand) (*usecases.CloseTicketResult, error)
}

type reopenTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.ReopenTicketCommand) (*dto.TicketDTO, error)
}

type getThreadExecutor interface {
	Execute(ctx context.Context, query usecases.GetThreadQuery) (*dto.ThreadDTO, error)
}

type listTicketsExecutor interface {
	Execute(ctx context.Context, query usecases.ListTicketsQuery) (*dto.TicketListDTO, error)
}

type snoozeTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.SnoozeTicketCommand) (*dto.TicketDTO, error)
}

type updateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type createInsightTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateInsightTicketCommand) (*usecases.CreateInsightTicketResult, error)
}
