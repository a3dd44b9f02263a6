package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Item is a single user-facing notification.
type Item struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

const maxItems = 50

// Notifier collects user-facing notifications for the portal layer to
// render. Newest first, bounded, safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	items  []Item
	logger *zap.Logger
}

// NewNotifier builds an empty notifier.
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Push records a notification.
func (n *Notifier) Push(level Level, message, title string) Item {
	item := Item{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.items = append([]Item{item}, n.items...)
	if len(n.items) > maxItems {
		n.items = n.items[:maxItems]
	}
	n.mu.Unlock()

	n.logger.Info("notification",
		zap.String("level", string(level)),
		zap.String("title", title),
		zap.String("message", message))
	return item
}

// Success records a success notification.
func (n *Notifier) Success(message, title string) Item {
	return n.Push(LevelSuccess, message, title)
}

// Error records an error notification.
func (n *Notifier) Error(message, title string) Item {
	return n.Push(LevelError, message, title)
}

// Info records an info notification.
func (n *Notifier) Info(message, title string) Item {
	return n.Push(LevelInfo, message, title)
}

// Warning records a warning notification.
func (n *Notifier) Warning(message, title string) Item {
	return n.Push(LevelWarning, message, title)
}

// Items returns a newest-first snapshot.
func (n *Notifier) Items() []Item {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Item, len(n.items))
	copy(out, n.items)
	return out
}

// Dismiss removes the notification with the given id.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	n.items = kept
}

// MarkAllRead flags every notification as read.
func (n *Notifier) MarkAllRead() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		n.items[i].Read = true
	}
}

// Clear drops all notifications.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
}
