package lifecycle

import (
	"sync"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type Edge struct {
	TaskID  string
	Entered bool
}

// Tracker keeps the set of urgent task ids. The urgent count is the size of
// the set, so replaying the same transition twice cannot skew it.
type Tracker struct {
	mu     sync.Mutex
	urgent map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{urgent: make(map[string]struct{})}
}

func (t *Tracker) Reset(tasks []model.Task) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.urgent = make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if task.IsUrgent() {
			t.urgent[task.ID] = struct{}{}
		}
	}
}

func (t *Tracker) Enter(id string) (Edge, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, seen := t.urgent[id]; seen {
		return Edge{}, false
	}
	t.urgent[id] = struct{}{}
	return Edge{TaskID: id, Entered: true}, true
}

func (t *Tracker) Leave(id string) (Edge, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, seen := t.urgent[id]; !seen {
		return Edge{}, false
	}
	delete(t.urgent, id)
	return Edge{TaskID: id}, true
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.urgent)
}

func (t *Tracker) IsUrgent(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.urgent[id]
	return ok
}
