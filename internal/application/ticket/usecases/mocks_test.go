package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/application/ticket/runner"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

var (
	adminActor   = authorization.Principal{UserID: 1, Role: authorization.RoleAdmin, DisplayName: "Ada"}
	partnerActor = authorization.Principal{UserID: 2, Role: authorization.RolePartner, DisplayName: "Pat"}
	clientActor  = authorization.Principal{UserID: 5, Role: authorization.RoleClient, DisplayName: "Cleo"}
)

type mockTicketRepository struct {
	SaveFunc                  func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc                func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc               func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByIDForUpdateFunc      func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc                  func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	LastCreatedAtByOwnerFunc  func(ctx context.Context, ownerID uint) (*time.Time, error)
	FindIdleWaitingClientFunc func(ctx context.Context, before time.Time, limit int) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return t.SetID(100)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) LastCreatedAtByOwner(ctx context.Context, ownerID uint) (*time.Time, error) {
	if m.LastCreatedAtByOwnerFunc != nil {
		return m.LastCreatedAtByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindIdleWaitingClient(ctx context.Context, before time.Time, limit int) ([]*ticket.Ticket, error) {
	if m.FindIdleWaitingClientFunc != nil {
		return m.FindIdleWaitingClientFunc(ctx, before, limit)
	}
	return nil, nil
}

type mockMessageRepository struct {
	mu         sync.Mutex
	appended   []*ticket.Message
	AppendFunc func(ctx context.Context, m *ticket.Message) error
	ListFunc   func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error)
	LatestFunc func(ctx context.Context, ticketID uint) (*ticket.Message, error)
}

func (m *mockMessageRepository) Append(ctx context.Context, msg *ticket.Message) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID() == 0 {
		if err := msg.SetID(uint(len(m.appended) + 1)); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, msg)
	return nil
}

func (m *mockMessageRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ticketID, includeInternal)
	}
	return nil, nil
}

func (m *mockMessageRepository) Latest(ctx context.Context, ticketID uint) (*ticket.Message, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockMessageRepository) Appended() []*ticket.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ticket.Message(nil), m.appended...)
}

type mockDirectory struct {
	users    map[uint]*user.User
	partners map[uint][]uint
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		users: map[uint]*user.User{
			1: {ID: 1, Role: authorization.RoleAdmin, Name: "Ada"},
			2: {ID: 2, Role: authorization.RolePartner, Name: "Pat"},
			3: {ID: 3, Role: authorization.RolePartner, Name: "Quinn"},
			5: {ID: 5, Role: authorization.RoleClient, Name: "Cleo"},
			6: {ID: 6, Role: authorization.RoleClient, Name: "Dana"},
		},
		partners: map[uint][]uint{2: {5}},
	}
}

func (d *mockDirectory) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (d *mockDirectory) ListByRole(_ context.Context, role authorization.UserRole) ([]*user.User, error) {
	var out []*user.User
	for _, u := range d.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (d *mockDirectory) ListPartnersOfClient(_ context.Context, clientID uint) ([]*user.User, error) {
	var out []*user.User
	for partnerID, clients := range d.partners {
		for _, c := range clients {
			if c == clientID {
				out = append(out, d.users[partnerID])
			}
		}
	}
	return out, nil
}

func (d *mockDirectory) ListClientIDsOfPartner(_ context.Context, partnerID uint) ([]uint, error) {
	return d.partners[partnerID], nil
}

func (d *mockDirectory) IsPartnerOf(_ context.Context, partnerID, clientID uint) (bool, error) {
	for _, c := range d.partners[partnerID] {
		if c == clientID {
			return true, nil
		}
	}
	return false, nil
}

type notifyCall struct {
	Target       notify.Target
	Message      string
	TicketID     uint
	IncludeOwner bool
	Participants bool
}

type mockNotifier struct {
	mu     sync.Mutex
	calls  []notifyCall
	events []ticket.Event
}

func (n *mockNotifier) Notify(_ context.Context, target notify.Target, message, _ string, targetID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{Target: target, Message: message, TicketID: targetID})
}

func (n *mockNotifier) NotifyTicketParticipants(_ context.Context, t *ticket.Ticket, _ uint, message string, includeOwner bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{Message: message, TicketID: t.ID(), IncludeOwner: includeOwner, Participants: true})
}

func (n *mockNotifier) PublishEvent(_ context.Context, evt ticket.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

func (n *mockNotifier) eventTypes() []ticket.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ticket.EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type mockEscalation struct {
	mu      sync.Mutex
	runs    []uint
	RunFunc func(ctx context.Context, ticketID uint)
}

func (e *mockEscalation) Run(ctx context.Context, ticketID uint) {
	e.mu.Lock()
	e.runs = append(e.runs, ticketID)
	e.mu.Unlock()
	if e.RunFunc != nil {
		e.RunFunc(ctx, ticketID)
	}
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestMutator(repo ticket.TicketRepository) *runner.Runner {
	return runner.New(repo, passthroughTx{}, nil)
}

func newTestLogger() logger.Interface {
	return logger.NewNopLogger()
}

func newTestTicket(t *testing.T, id, ownerID uint, status vo.TicketStatus, updatedAt time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id,
		ownerID,
		nil,
		"Printer offline",
		status,
		vo.PriorityNormal,
		false,
		0,
		nil,
		vo.SourceClient,
		ownerID,
		1,
		updatedAt.Add(-time.Hour),
		updatedAt,
		nil,
	)
	require.NoError(t, err)
	return tk
}

// repoWith returns a repository that serves a single stored ticket.
func repoWith(tk *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*ticket.Ticket, error) {
			if id != tk.ID() {
				return nil, errors.NewNotFoundError("ticket not found")
			}
			return tk, nil
		},
	}
}
