package notify

import (
	"testing"
	"time"
)

func newTestNotifier(start time.Time) (*Notifier, *time.Time) {
	n := NewNotifier()
	clock := start
	n.now = func() time.Time { return clock }
	return n, &clock
}

func TestPushAndDrain(t *testing.T) {
	n, _ := newTestNotifier(time.Now())

	n.Push("sid-1", Success, "Category added successfully")
	n.Push("sid-1", Error, "Could not load products.")
	n.Push("sid-2", Info, "other session")

	got := n.Drain("sid-1")
	if len(got) != 2 {
		t.Fatalf("Drain = %+v, want 2 messages", got)
	}
	if got[0].Text != "Category added successfully" || got[0].Level != Success {
		t.Fatalf("first message = %+v", got[0])
	}
	if got[1].Level != Error {
		t.Fatalf("second message = %+v", got[1])
	}

	// Drain clears the queue but not other sessions'.
	if again := n.Drain("sid-1"); len(again) != 0 {
		t.Fatalf("second Drain = %+v, want empty", again)
	}
	if other := n.Drain("sid-2"); len(other) != 1 {
		t.Fatalf("sid-2 queue = %+v", other)
	}
}

// An identical text pushed within the window is dropped; after the window it
// queues again.
func TestPushDeduplicatesWithinWindow(t *testing.T) {
	n, clock := newTestNotifier(time.Unix(1000, 0))

	n.Push("sid-1", Success, "Login successful")
	*clock = clock.Add(time.Second)
	n.Push("sid-1", Success, "Login successful")

	if got := n.Drain("sid-1"); len(got) != 1 {
		t.Fatalf("within window: %d messages, want 1", len(got))
	}

	n.Push("sid-1", Success, "Login successful")
	*clock = clock.Add(4 * time.Second)
	n.Push("sid-1", Success, "Login successful")

	if got := n.Drain("sid-1"); len(got) != 2 {
		t.Fatalf("across windows: %d messages, want 2", len(got))
	}
}

func TestPushDedupIsPerSessionAndPerText(t *testing.T) {
	n, _ := newTestNotifier(time.Unix(1000, 0))

	n.Push("sid-1", Success, "Saved")
	n.Push("sid-2", Success, "Saved")
	n.Push("sid-1", Success, "Deleted")

	if got := n.Drain("sid-1"); len(got) != 2 {
		t.Fatalf("sid-1 = %+v, want 2 messages", got)
	}
	if got := n.Drain("sid-2"); len(got) != 1 {
		t.Fatalf("sid-2 = %+v, want 1 message", got)
	}
}

func TestPushIgnoresEmptyInput(t *testing.T) {
	n, _ := newTestNotifier(time.Now())

	n.Push("", Success, "orphan")
	n.Push("sid-1", Success, "")

	if got := n.Drain(""); len(got) != 0 {
		t.Fatalf("empty session queued: %+v", got)
	}
	if got := n.Drain("sid-1"); len(got) != 0 {
		t.Fatalf("empty text queued: %+v", got)
	}
}
