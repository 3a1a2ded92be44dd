// Package notify implements the per-session flash messages shown after
// logins and mutations. Messages survive the post/redirect/get hop and are
// drained at the next render.
package notify

import (
	"sync"
	"time"
)

// Level selects the toast styling.
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
	Warning Level = "warning"
)

// Message is one pending toast.
type Message struct {
	Text  string
	Level Level
}

// dedupWindow is how long an identical message suppresses re-pushes, so a
// double-submitted form does not stack the same toast twice.
const dedupWindow = 3 * time.Second

// Notifier queues flash messages per session. Pushing a message whose text
// matches one pushed for the same session inside the de-duplication window
// is a no-op.
type Notifier struct {
	mu     sync.Mutex
	queues map[string][]Message
	recent map[string]time.Time
	now    func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{
		queues: make(map[string][]Message),
		recent: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Push queues a toast for the session unless the same text is still inside
// the de-duplication window.
func (n *Notifier) Push(sessionID string, level Level, text string) {
	if sessionID == "" || text == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	key := sessionID + "\x00" + text
	if last, ok := n.recent[key]; ok && now.Sub(last) < dedupWindow {
		return
	}
	n.recent[key] = now
	n.queues[sessionID] = append(n.queues[sessionID], Message{Text: text, Level: level})
	n.prune(now)
}

// Drain returns the session's pending toasts and clears the queue.
func (n *Notifier) Drain(sessionID string) []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	msgs := n.queues[sessionID]
	delete(n.queues, sessionID)
	return msgs
}

// prune drops expired de-duplication markers. Called under the lock.
func (n *Notifier) prune(now time.Time) {
	for key, t := range n.recent {
		if now.Sub(t) >= dedupWindow {
			delete(n.recent, key)
		}
	}
}
