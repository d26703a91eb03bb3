// Package notify implements the transient toast queue shown after each
// catalog command.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind tags a notification.
type Kind string

// Notification kinds.
const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
)

// DefaultDuration is how long a toast stays up unless overridden.
const DefaultDuration = 3000 * time.Millisecond

// Notification is a single toast.
type Notification struct {
	ID        uuid.UUID     `json:"id"`
	Kind      Kind          `json:"kind"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
}

// EventType says what happened to a notification.
type EventType string

// Event types delivered to subscribers.
const (
	Shown     EventType = "shown"
	Dismissed EventType = "dismissed"
)

// Event is published to subscribers on every show and dismiss.
type Event struct {
	Type         EventType    `json:"type"`
	Notification Notification `json:"notification"`
}

// Notifier keeps the stack of live toasts. Each toast is removed by its own
// timer; dismissing one never touches the others.
type Notifier struct {
	mu          sync.Mutex
	items       []Notification
	timers      map[uuid.UUID]*time.Timer
	duration    time.Duration
	subscribers []chan Event
	closed      bool
	now         func() time.Time
}

// New creates a notifier whose toasts last d by default. A non-positive d
// selects DefaultDuration.
func New(d time.Duration) *Notifier {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Notifier{
		timers:   make(map[uuid.UUID]*time.Timer),
		duration: d,
		now:      time.Now,
	}
}

// Show pushes a toast and schedules its dismissal. An optional positive
// duration overrides the default.
func (n *Notifier) Show(message string, kind Kind, duration ...time.Duration) Notification {
	d := n.duration
	if len(duration) > 0 && duration[0] > 0 {
		d = duration[0]
	}

	note := Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Message:   message,
		CreatedAt: n.now(),
		Duration:  d,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return note
	}
	n.items = append(n.items, note)
	n.timers[note.ID] = time.AfterFunc(d, func() { n.Dismiss(note.ID) })
	n.publish(Event{Type: Shown, Notification: note})
	return note
}

// Success shows a success toast with the default duration.
func (n *Notifier) Success(message string) Notification {
	return n.Show(message, Success)
}

// Fail shows an error toast with the default duration.
func (n *Notifier) Fail(message string) Notification {
	return n.Show(message, Error)
}

// Warn shows a warning toast with the default duration.
func (n *Notifier) Warn(message string) Notification {
	return n.Show(message, Warning)
}

// Dismiss removes a toast early. It reports whether the toast was live.
func (n *Notifier) Dismiss(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, note := range n.items {
		if note.ID != id {
			continue
		}
		n.items = append(n.items[:i], n.items[i+1:]...)
		if t, ok := n.timers[id]; ok {
			t.Stop()
			delete(n.timers, id)
		}
		n.publish(Event{Type: Dismissed, Notification: note})
		return true
	}
	return false
}

// Active returns the live toasts, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

// Subscribe returns a channel receiving every subsequent event. Slow
// subscribers miss events rather than block the notifier.
func (n *Notifier) Subscribe() <-chan Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan Event, 16)
	if n.closed {
		close(ch)
		return ch
	}
	n.subscribers = append(n.subscribers, ch)
	return ch
}

// Unsubscribe detaches and closes a channel returned by Subscribe.
func (n *Notifier) Unsubscribe(ch <-chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.subscribers {
		if c == ch {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			close(c)
			return
		}
	}
}

// Close stops all pending timers, drops live toasts and closes subscriber
// channels. Show after Close is a no-op.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.items = nil
	for _, c := range n.subscribers {
		close(c)
	}
	n.subscribers = nil
}

// publish must be called with n.mu held.
func (n *Notifier) publish(ev Event) {
	for _, ch := range n.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
