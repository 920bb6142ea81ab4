package impl

import (
	"sync"

	"usersync/internal/usecase"
)

// eventTrail is a fixed-capacity ring of recently handled change events.
// It is diagnostic only and safe for concurrent use.
type eventTrail struct {
	mu      sync.RWMutex
	entries []usecase.ChangeOutcome
	next    int
	full    bool
}

func newEventTrail(capacity int) *eventTrail {
	if capacity <= 0 {
		capacity = 1
	}

	return &eventTrail{entries: make([]usecase.ChangeOutcome, capacity)}
}

func (t *eventTrail) record(outcome usecase.ChangeOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[t.next] = outcome
	t.next = (t.next + 1) % len(t.entries)
	if t.next == 0 {
		t.full = true
	}
}

// snapshot returns the retained entries, oldest first.
func (t *eventTrail) snapshot() []usecase.ChangeOutcome {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		out := make([]usecase.ChangeOutcome, t.next)
		copy(out, t.entries[:t.next])

		return out
	}

	out := make([]usecase.ChangeOutcome, 0, len(t.entries))
	out = append(out, t.entries[t.next:]...)
	out = append(out, t.entries[:t.next]...)

	return out
}
