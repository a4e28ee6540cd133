// Package notify carries short messages from agents and the planet to
// whoever displays them.
package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"
)

// DefaultAuthor is used when a notification has no author.
const DefaultAuthor = "System"

// DefaultCapacity is the number of notifications a Queue keeps.
const DefaultCapacity = 10

// ErrInvalidMessage is returned for empty or non-UTF-8 messages.
var ErrInvalidMessage = errors.New("notify: invalid message")

// Notification is an immutable message stamped with the simulation day.
type Notification struct {
	Author  string
	Day     int
	Message string
}

// New builds a notification, defaulting the author to DefaultAuthor.
func New(author string, day int, message string) (Notification, error) {
	if message == "" {
		return Notification{}, fmt.Errorf("%w: empty message", ErrInvalidMessage)
	}
	if !utf8.ValidString(message) {
		return Notification{}, fmt.Errorf("%w: message is not valid UTF-8", ErrInvalidMessage)
	}
	if author == "" {
		author = DefaultAuthor
	}
	return Notification{Author: author, Day: day, Message: message}, nil
}

// String formats the notification for plain-text display.
func (n Notification) String() string {
	return fmt.Sprintf("%s | Day %d | - %s", n.Author, n.Day, n.Message)
}

// LogValue implements slog.LogValuer.
func (n Notification) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("author", n.Author),
		slog.Int("day", n.Day),
		slog.String("message", n.Message),
	)
}

// Sink accepts notifications.
type Sink interface {
	Push(n Notification)
}

// Queue keeps the most recent notifications, newest first.
type Queue struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
}

// NewQueue creates a queue holding at most capacity entries.
// A non-positive capacity uses DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity, items: make([]Notification, 0, capacity)}
}

// Push prepends n, dropping the oldest entry when full.
func (q *Queue) Push(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.capacity {
		q.items = q.items[:q.capacity-1]
	}
	q.items = append(q.items, Notification{})
	copy(q.items[1:], q.items)
	q.items[0] = n
}

// Items returns a copy of the queue, newest first.
func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LogSink writes notifications to a slog logger.
type LogSink struct {
	Logger *slog.Logger
}

// Push logs n at info level.
func (s LogSink) Push(n Notification) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification", "author", n.Author, "day", n.Day, "message", n.Message)
}

// Multi fans a notification out to several sinks in order.
type Multi []Sink

// Push forwards n to every sink.
func (m Multi) Push(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Push(n)
		}
	}
}

// Discard drops every notification.
type Discard struct{}

// Push does nothing.
func (Discard) Push(Notification) {}
