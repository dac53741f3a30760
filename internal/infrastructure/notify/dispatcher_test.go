package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type fakeDirectory struct {
	users    map[uint]*user.User
	partners map[uint][]uint
	err      error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[uint]*user.User{
			1:  {ID: 1, Role: authorization.RoleAdmin, Email: "ada@example.com"},
			2:  {ID: 2, Role: authorization.RoleAdmin, Email: "alan@example.com"},
			5:  {ID: 5, Role: authorization.RolePartner, Email: "pat@example.com"},
			10: {ID: 10, Role: authorization.RoleClient, Email: "client@example.com"},
		},
		partners: map[uint][]uint{10: {5}},
	}
}

func (d *fakeDirectory) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (d *fakeDirectory) ListByRole(_ context.Context, role authorization.UserRole) ([]*user.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []*user.User
	for _, id := range []uint{1, 2, 5, 10} {
		if d.users[id].Role == role {
			out = append(out, d.users[id])
		}
	}
	return out, nil
}

func (d *fakeDirectory) ListPartnersOfClient(_ context.Context, clientID uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range d.partners[clientID] {
		out = append(out, d.users[id])
	}
	return out, nil
}

func (d *fakeDirectory) ListClientIDsOfPartner(context.Context, uint) ([]uint, error) {
	return nil, nil
}

func (d *fakeDirectory) IsPartnerOf(context.Context, uint, uint) (bool, error) {
	return false, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*notification.Notification
	err     error
}

func (r *fakeNotificationRepo) BulkCreate(_ context.Context, ns []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, ns...)
	return r.err
}

func (r *fakeNotificationRepo) ListByUserID(context.Context, uint, bool, int, int) ([]*notification.Notification, int64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(context.Context, uint, uint) error {
	return nil
}

func (r *fakeNotificationRepo) userIDs() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint, 0, len(r.created))
	for _, n := range r.created {
		ids = append(ids, n.UserID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeMailer struct {
	mu  sync.Mutex
	to  []string
	err error
}

func (m *fakeMailer) SendTicketNotification(to, subject, body string, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	return m.err
}

type fakePublisher struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload any) error {
	body, _ := json.Marshal(payload)
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, body)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func TestDispatcher_DeliverAllAdmins(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	d := NewDispatcher(newFakeDirectory(), repo, mailer, nil, logger.NewNopLogger())

	d.Deliver(context.Background(), AllAdmins, "Ticket #3 escalated", TargetTypeTicket, 3)

	assert.Equal(t, []uint{1, 2}, repo.userIDs())
	assert.ElementsMatch(t, []string{"ada@example.com", "alan@example.com"}, mailer.to)
}

func TestDispatcher_DeliverSingleUser(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	d := NewDispatcher(newFakeDirectory(), repo, mailer, nil, logger.NewNopLogger())

	d.Deliver(context.Background(), UserTarget(10), "New reply", TargetTypeTicket, 3)
	assert.Equal(t, []uint{10}, repo.userIDs())
	// Only admins receive email.
	assert.Empty(t, mailer.to)

	d.Deliver(context.Background(), UserTarget(99), "New reply", TargetTypeTicket, 3)
	assert.Equal(t, []uint{10}, repo.userIDs())
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	dir := newFakeDirectory()
	repo := &fakeNotificationRepo{err: errors.New("db down")}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	d := NewDispatcher(dir, repo, mailer, nil, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		d.Deliver(context.Background(), AllAdmins, "x", TargetTypeTicket, 1)
	})
	assert.Len(t, mailer.to, 2)

	dir.err = errors.New("directory down")
	assert.NotPanics(t, func() {
		d.Deliver(context.Background(), AllAdmins, "x", TargetTypeTicket, 1)
	})
}

func TestDispatcher_DeliverToParticipants(t *testing.T) {
	tests := []struct {
		name         string
		actorID      uint
		includeOwner bool
		want         []uint
	}{
		{"client action reaches staff", 10, false, []uint{1, 2, 5}},
		{"admin action reaches owner and other staff", 1, true, []uint{2, 5, 10}},
		{"partner action skips partner", 5, true, []uint{1, 2, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNotificationRepo{}
			d := NewDispatcher(newFakeDirectory(), repo, nil, nil, logger.NewNopLogger())
			d.DeliverToParticipants(context.Background(), 10, 3, tt.actorID, "update", tt.includeOwner)
			assert.Equal(t, tt.want, repo.userIDs())
		})
	}
}

func TestDispatcher_Publish(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(newFakeDirectory(), &fakeNotificationRepo{}, nil, pub, logger.NewNopLogger())

	tk, err := ticket.NewTicket(10, 10, "Site down", "normal", "client")
	require.NoError(t, err)
	require.NoError(t, tk.SetID(3))

	d.Publish(context.Background(), ticket.NewTicketCreatedEvent(tk))
	require.Equal(t, []string{"ticket.created"}, pub.keys)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.payloads[0], &decoded))
	assert.NotEmpty(t, decoded["id"])
	assert.Equal(t, "ticket.created", decoded["type"])
	assert.EqualValues(t, 3, decoded["ticket_id"])

	pub.err = errors.New("broker down")
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), ticket.NewTicketCreatedEvent(tk))
	})
}

func TestDispatcher_NotifyRunsInBackground(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(newFakeDirectory(), repo, nil, nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, UserTarget(10), "hello", TargetTypeTicket, 1)
	cancel()

	assert.Eventually(t, func() bool {
		return len(repo.userIDs()) == 1
	}, time.Second, 10*time.Millisecond)
}
