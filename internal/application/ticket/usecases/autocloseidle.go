package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const (
	defaultIdleCloseAfter = 7 * 24 * time.Hour
	autoCloseBatchSize    = 100
)

// AutoCloseIdleUseCase silently closes waiting_client tickets nobody touched for idleAfter.
// It satisfies scheduler.BatchJob.
type AutoCloseIdleUseCase struct {
	ticketRepo ticket.TicketRepository
	mutator    TicketMutator
	notifier   Notifier
	idleAfter  time.Duration
	logger     logger.Interface
}

func NewAutoCloseIdleUseCase(
	ticketRepo ticket.TicketRepository,
	mutator TicketMutator,
	notifier Notifier,
	idleAfter time.Duration,
	logger logger.Interface,
) *AutoCloseIdleUseCase {
	if idleAfter <= 0 {
		idleAfter = defaultIdleCloseAfter
	}
	return &AutoCloseIdleUseCase{
		ticketRepo: ticketRepo,
		mutator:    mutator,
		notifier:   notifier,
		idleAfter:  idleAfter,
		logger:     logger,
	}
}

// Execute closes one batch and returns how many tickets it closed.
func (uc *AutoCloseIdleUseCase) Execute(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	candidates, err := uc.ticketRepo.FindIdleWaitingClient(ctx, now.Add(-uc.idleAfter), autoCloseBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find idle tickets: %w", err)
	}

	closed := 0
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return closed, ctx.Err()
		}

		var changed bool
		t, err := uc.mutator.Mutate(ctx, candidate.ID(), func(txCtx context.Context, t *ticket.Ticket) error {
			// The ticket may have moved on since the candidate query.
			changed = t.AutoCloseIfIdle(now, uc.idleAfter)
			if !changed {
				return nil
			}
			return uc.ticketRepo.Update(txCtx, t)
		})
		if err != nil {
			uc.logger.Warnw("failed to auto-close ticket", "ticket_id", candidate.ID(), "error", err)
			continue
		}
		if !changed {
			continue
		}

		closed++
		uc.notifier.PublishEvent(ctx, ticket.NewStatusChangedEvent(t, vo.StatusWaitingClient.String(), 0))
		uc.logger.Infow("ticket auto-closed", "ticket_id", t.ID(), "idle_since", candidate.UpdatedAt())
	}

	return closed, nil
}
