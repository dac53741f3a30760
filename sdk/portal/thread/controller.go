// Package thread keeps a client-side view of one ticket thread consistent while
// the user sends replies and automated answers are revealed with a typing delay.
package thread

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clientdesk/clientdesk/sdk/portal"
)

// ErrBusy is returned by Send while a previous send is still revealing replies.
var ErrBusy = errors.New("thread: a reply is still in progress")

// ErrTicketClosed is returned by Send when the ticket no longer accepts replies.
var ErrTicketClosed = errors.New("thread: ticket is closed")

// ThreadAPI is the subset of portal.Client the controller needs.
type ThreadAPI interface {
	FetchThread(ctx context.Context, ticketID uint) (*portal.Thread, error)
	Reply(ctx context.Context, ticketID uint, req portal.ReplyRequest) (*portal.ReplyResult, error)
}

// Item is one entry of the view. LocalID is set while the entry is an
// unconfirmed local echo.
type Item struct {
	portal.Message
	LocalID string
}

// Pending reports whether the server has not confirmed the item yet.
func (i Item) Pending() bool {
	return i.LocalID != ""
}

// Controller owns the message list of a single ticket.
type Controller struct {
	api      ThreadAPI
	ticketID uint

	onChange func([]Item)
	onStatus func(string)
	onError  func(error)
	sleep    func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	items    []Item
	status   string
	thinking bool
}

type Option func(*Controller)

// WithChangeListener is called with a snapshot every time the view changes.
// Listeners run with the controller locked and must not call back into it.
func WithChangeListener(fn func([]Item)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithStatusListener is called with the new status whenever the ticket status changes.
func WithStatusListener(fn func(status string)) Option {
	return func(c *Controller) { c.onStatus = fn }
}

// WithErrorHandler receives errors from background polling.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Controller) { c.onError = fn }
}

func NewController(api ThreadAPI, ticketID uint, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		ticketID: ticketID,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the view with the server's thread.
func (c *Controller) Load(ctx context.Context) error {
	return c.resync(ctx)
}

// Items returns a snapshot of the view.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Thinking reports whether a send is in progress. Polling is suspended meanwhile.
func (c *Controller) Thinking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thinking
}

// Send posts text as a reply and reconciles the view:
// the text is echoed locally at once, the confirmed thread replaces the echo,
// and automated replies appear one at a time after their reveal delay.
// It returns ErrTicketClosed when the ticket does not accept replies.
func (c *Controller) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.thinking {
		c.mu.Unlock()
		return ErrBusy
	}
	lastID := c.lastServerIDLocked()
	localID := uuid.NewString()
	c.items = append(c.items, Item{
		Message: portal.Message{
			TicketID:   c.ticketID,
			SenderKind: portal.SenderHuman,
			Body:       text,
			CreatedAt:  time.Now().UTC(),
		},
		LocalID: localID,
	})
	c.thinking = true
	c.emitChangeLocked()
	c.mu.Unlock()

	result, err := c.api.Reply(ctx, c.ticketID, portal.ReplyRequest{Body: text})
	if err != nil {
		c.mu.Lock()
		c.dropLocalLocked(localID)
		c.thinking = false
		if portal.IsTicketClosed(err) {
			c.setStatusLocked(portal.StatusClosed)
		}
		c.emitChangeLocked()
		c.mu.Unlock()

		if portal.IsTicketClosed(err) {
			return ErrTicketClosed
		}
		return err
	}

	if result.StatusChanged {
		c.mu.Lock()
		c.setStatusLocked(result.Status)
		c.mu.Unlock()
	}

	thread, err := c.api.FetchThread(ctx, c.ticketID)
	if err != nil {
		c.finish()
		return err
	}

	var held, automated []portal.Message
	for _, m := range thread.Messages {
		if m.ID > lastID && m.IsSystem() {
			automated = append(automated, m)
			continue
		}
		held = append(held, m)
	}

	c.mu.Lock()
	c.items = toItems(held)
	if thread.Ticket != nil {
		c.setStatusLocked(thread.Ticket.Status)
	}
	c.emitChangeLocked()
	c.mu.Unlock()

	for _, m := range automated {
		if err := c.sleep(ctx, m.RevealDelay()); err != nil {
			break
		}
		c.mu.Lock()
		c.items = append(c.items, Item{Message: m})
		c.emitChangeLocked()
		c.mu.Unlock()
	}

	c.finish()
	// A failed resync leaves the revealed view in place; the next poll repairs it.
	_ = c.resync(ctx)
	return nil
}

// Poll fetches the thread once and adopts it when the server holds more
// messages than the view. It does nothing while a send is in progress.
func (c *Controller) Poll(ctx context.Context) (bool, error) {
	if c.Thinking() {
		return false, nil
	}

	thread, err := c.api.FetchThread(ctx, c.ticketID)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A send may have started while the fetch was in flight.
	if c.thinking {
		return false, nil
	}
	if thread.Ticket != nil {
		c.setStatusLocked(thread.Ticket.Status)
	}
	if len(thread.Messages) <= len(c.items) {
		return false, nil
	}
	c.items = toItems(thread.Messages)
	c.emitChangeLocked()
	return true, nil
}

// RunPolling polls every interval until ctx is done.
func (c *Controller) RunPolling(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := c.Poll(ctx); err != nil && c.onError != nil {
				c.onError(err)
			}
		}
	}
}

func (c *Controller) resync(ctx context.Context) error {
	thread, err := c.api.FetchThread(ctx, c.ticketID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.thinking {
		return nil
	}
	c.items = toItems(thread.Messages)
	if thread.Ticket != nil {
		c.setStatusLocked(thread.Ticket.Status)
	}
	c.emitChangeLocked()
	return nil
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.thinking = false
	c.mu.Unlock()
}

func (c *Controller) lastServerIDLocked() uint {
	var last uint
	for _, it := range c.items {
		if !it.Pending() && it.ID > last {
			last = it.ID
		}
	}
	return last
}

func (c *Controller) dropLocalLocked(localID string) {
	for i, it := range c.items {
		if it.LocalID == localID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Controller) setStatusLocked(status string) {
	if status == "" || status == c.status {
		return
	}
	c.status = status
	if c.onStatus != nil {
		c.onStatus(status)
	}
}

func (c *Controller) emitChangeLocked() {
	if c.onChange != nil {
		c.onChange(c.snapshotLocked())
	}
}

func (c *Controller) snapshotLocked() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func toItems(messages []portal.Message) []Item {
	out := make([]Item, 0, len(messages))
	for _, m := range messages {
		out = append(out, Item{Message: m})
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
