package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

var (
	ErrInvalidFireTime = errors.New("scheduler: invalid fire time")
	ErrMissingID       = errors.New("scheduler: notification id is required")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

// Scheduling an ID that is already queued replaces the earlier entry.
type Notification struct {
	ID     string
	TaskID string
	Kind   model.ReminderKind
	Title  string
	Body   string
	FireAt time.Time
}

type queueItem struct {
	n     Notification
	index int
}

type notificationQueue []*queueItem

func (q notificationQueue) Len() int { return len(q) }

func (q notificationQueue) Less(i, j int) bool {
	return q[i].n.FireAt.Before(q[j].n.FireAt)
}

func (q notificationQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *notificationQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *notificationQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[0 : n-1]
	return item
}

// Delivery never blocks; notifications a slow consumer misses count in Dropped.
type Engine struct {
	mu      sync.Mutex
	queue   notificationQueue
	byID    map[string]*queueItem
	out     chan Notification
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(notificationQueue, 0),
		byID:   make(map[string]*queueItem),
		out:    make(chan Notification, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

func (e *Engine) C() <-chan Notification {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(n Notification) error {
	if n.ID == "" {
		return ErrMissingID
	}
	if n.FireAt.IsZero() {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if existing, ok := e.byID[n.ID]; ok {
		existing.n = n
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &queueItem{n: n}
		heap.Push(&e.queue, item)
		e.byID[n.ID] = item
	}
	e.signalWakeup()
	return nil
}

func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.byID, id)
	e.signalWakeup()
	return true
}

func (e *Engine) Pending() []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Notification, 0, len(e.queue))
	for _, item := range e.queue {
		out = append(out, item.n)
	}
	return out
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.FireAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, n := range e.popDue(e.now()) {
				select {
				case e.out <- n:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Notification{}, false
	}
	return e.queue[0].n, true
}

func (e *Engine) popDue(now time.Time) []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Notification
	for len(e.queue) > 0 {
		if e.queue[0].n.FireAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(*queueItem)
		delete(e.byID, item.n.ID)
		out = append(out, item.n)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
