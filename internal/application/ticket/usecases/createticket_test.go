package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

type createFixture struct {
	repo       *mockTicketRepository
	messages   *mockMessageRepository
	notifier   *mockNotifier
	escalation *mockEscalation
	saved      *ticket.Ticket
	uc         *CreateTicketUseCase
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		messages:   &mockMessageRepository{},
		notifier:   &mockNotifier{},
		escalation: &mockEscalation{},
	}
	f.repo = &mockTicketRepository{
		SaveFunc: func(_ context.Context, t *ticket.Ticket) error {
			f.saved = t
			return t.SetID(42)
		},
		GetByIDFunc: func(_ context.Context, id uint) (*ticket.Ticket, error) {
			if f.saved == nil || f.saved.ID() != id {
				return nil, errors.NewNotFoundError("ticket not found")
			}
			return f.saved, nil
		},
	}
	f.uc = NewCreateTicketUseCase(f.repo, f.messages, newMockDirectory(), passthroughTx{},
		f.notifier, f.escalation, time.Minute, newTestLogger())
	return f
}

func TestCreateTicketUseCase_ClientTicket(t *testing.T) {
	f := newCreateFixture()

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor:   clientActor,
		Subject: "Billing question",
		Body:    "Can I get a refund?",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), result.Ticket.ID)
	assert.Equal(t, vo.StatusOpen.String(), result.Ticket.Status)
	assert.Equal(t, vo.SourceClient.String(), result.Ticket.Source)
	assert.Equal(t, clientActor.UserID, result.Ticket.OwnerID)
	assert.Equal(t, 50, result.Ticket.SentimentScore)
	assert.Equal(t, "normal", result.Ticket.Priority)

	appended := f.messages.Appended()
	require.Len(t, appended, 1)
	assert.Equal(t, "Can I get a refund?", appended[0].Body())
	assert.Equal(t, clientActor.UserID, appended[0].Sender().UserID())

	assert.Equal(t, []uint{42}, f.escalation.runs)
	assert.Contains(t, f.notifier.eventTypes(), ticket.EventTicketCreated)
}

func TestCreateTicketUseCase_SentimentFromSubject(t *testing.T) {
	f := newCreateFixture()

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor:   clientActor,
		Subject: "Site is down, urgent!!",
		Body:    "Nothing loads.",
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Ticket.SentimentScore, 50)
}

func TestCreateTicketUseCase_ClientCooldown(t *testing.T) {
	tests := []struct {
		name      string
		lastAgo   time.Duration
		wantLimit bool
	}{
		{name: "inside cooldown", lastAgo: 10 * time.Second, wantLimit: true},
		{name: "after cooldown", lastAgo: 2 * time.Minute, wantLimit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			f.repo.LastCreatedAtByOwnerFunc = func(_ context.Context, ownerID uint) (*time.Time, error) {
				assert.Equal(t, clientActor.UserID, ownerID)
				last := time.Now().Add(-tt.lastAgo)
				return &last, nil
			}

			_, err := f.uc.Execute(context.Background(), CreateTicketCommand{
				Actor:   clientActor,
				Subject: "Another one",
				Body:    "hello",
			})

			if tt.wantLimit {
				require.Error(t, err)
				assert.True(t, errors.IsRateLimitedError(err))
				assert.Nil(t, f.saved)
				assert.Empty(t, f.messages.Appended())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateTicketUseCase_ConcurrentClientCreates(t *testing.T) {
	f := newCreateFixture()

	var (
		mu      sync.Mutex
		last    *time.Time
		created []*ticket.Ticket
	)
	f.repo.LastCreatedAtByOwnerFunc = func(context.Context, uint) (*time.Time, error) {
		mu.Lock()
		defer mu.Unlock()
		return last, nil
	}
	f.repo.SaveFunc = func(_ context.Context, tk *ticket.Ticket) error {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		created = append(created, tk)
		now := time.Now()
		last = &now
		return tk.SetID(uint(len(created)))
	}
	f.repo.GetByIDFunc = func(_ context.Context, id uint) (*ticket.Ticket, error) {
		mu.Lock()
		defer mu.Unlock()
		if id == 0 || int(id) > len(created) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return created[id-1], nil
	}

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), CreateTicketCommand{
				Actor:   clientActor,
				Subject: "Site down",
				Body:    "double submit",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.IsRateLimitedError(err))
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, created, 1)
	assert.Equal(t, 0, f.uc.ownerLocks.Len())
}

func TestCreateTicketUseCase_StaffOnBehalfOfClient(t *testing.T) {
	f := newCreateFixture()
	f.repo.LastCreatedAtByOwnerFunc = func(context.Context, uint) (*time.Time, error) {
		t.Fatal("staff tickets are not rate limited")
		return nil, nil
	}

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor:    partnerActor,
		OwnerID:  5,
		Subject:  "Scheduled maintenance",
		Body:     "We will patch the server tonight.",
		Priority: "high",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), result.Ticket.OwnerID)
	assert.Equal(t, partnerActor.UserID, result.Ticket.CreatedBy)
	assert.Equal(t, vo.SourceStaff.String(), result.Ticket.Source)
	assert.Equal(t, "high", result.Ticket.Priority)
	assert.Empty(t, f.escalation.runs)
}

func TestCreateTicketUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		cmd   CreateTicketCommand
		check func(error) bool
	}{
		{
			name:  "partner not assigned to client",
			cmd:   CreateTicketCommand{Actor: partnerActor, OwnerID: 6, Subject: "s", Body: "b"},
			check: errors.IsForbiddenError,
		},
		{
			name:  "staff without owner",
			cmd:   CreateTicketCommand{Actor: adminActor, Subject: "s", Body: "b"},
			check: errors.IsValidationError,
		},
		{
			name:  "owner is not a client",
			cmd:   CreateTicketCommand{Actor: adminActor, OwnerID: 2, Subject: "s", Body: "b"},
			check: errors.IsValidationError,
		},
		{
			name:  "unknown owner",
			cmd:   CreateTicketCommand{Actor: adminActor, OwnerID: 99, Subject: "s", Body: "b"},
			check: errors.IsNotFoundError,
		},
		{
			name:  "empty body",
			cmd:   CreateTicketCommand{Actor: clientActor, Subject: "s", Body: "  "},
			check: errors.IsValidationError,
		},
		{
			name:  "empty subject",
			cmd:   CreateTicketCommand{Actor: clientActor, Subject: "", Body: "b"},
			check: errors.IsValidationError,
		},
		{
			name:  "bad priority",
			cmd:   CreateTicketCommand{Actor: clientActor, Subject: "s", Body: "b", Priority: "medium"},
			check: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()

			_, err := f.uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Nil(t, f.saved)
		})
	}
}

func TestCreateTicketUseCase_AttachmentOnly(t *testing.T) {
	f := newCreateFixture()

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor:         clientActor,
		Subject:       "Screenshot",
		AttachmentRef: "uploads/5/screen.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "uploads/5/screen.png", result.Message.AttachmentRef)
}
