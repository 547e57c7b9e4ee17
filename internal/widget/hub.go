package widget

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/storage"
)

const DefaultNextLimit = 5

type Entry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority"`
	EndDate   time.Time `json:"end_date"`
	Remaining string    `json:"remaining"`
	Urgent    bool      `json:"urgent"`
	Doing     bool      `json:"doing"`
}

type Snapshot struct {
	Generation  uint64    `json:"generation"`
	GeneratedAt time.Time `json:"generated_at"`
	Pending     int       `json:"pending"`
	Urgent      int       `json:"urgent"`
	Doing       int       `json:"doing"`
	WeeklyScore int       `json:"weekly_score"`
	Next        []Entry   `json:"next"`
}

type Hub struct {
	repo   storage.Repository
	limit  int
	now    func() time.Time
	logger *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func NewHub(repo storage.Repository, limit int, logger *zap.Logger) *Hub {
	if limit <= 0 {
		limit = DefaultNextLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{repo: repo, limit: limit, now: time.Now, logger: logger}
}

func (h *Hub) ReloadAllTimelines() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := h.Reload(ctx); err != nil {
		h.logger.Warn("widget reload failed", zap.Error(err))
	}
}

func (h *Hub) Reload(ctx context.Context) (Snapshot, error) {
	tasks, err := h.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	now := h.now()
	next := BuildSnapshot(tasks, now, h.limit)

	h.mu.Lock()
	next.Generation = h.snap.Generation + 1
	h.snap = next
	h.mu.Unlock()
	return next, nil
}

func (h *Hub) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

func (h *Hub) Tasks(ctx context.Context) ([]model.Task, error) {
	return h.repo.ListTasks(ctx, storage.TaskListFilter{})
}

// Urgency is judged against now, not the stored state.
func BuildSnapshot(tasks []model.Task, now time.Time, limit int) Snapshot {
	snap := Snapshot{GeneratedAt: now, WeeklyScore: model.WeeklyScore(tasks, now), Next: []Entry{}}
	for _, t := range tasks {
		if t.IsDone() {
			continue
		}
		urgent := !now.Before(t.EmergencyDate)
		snap.Pending++
		if urgent {
			snap.Urgent++
		}
		if t.Doing {
			snap.Doing++
		}
		if len(snap.Next) < limit {
			snap.Next = append(snap.Next, Entry{
				ID:        t.ID,
				Content:   t.Content,
				Priority:  t.Priority.String(),
				EndDate:   t.EndDate,
				Remaining: model.RemainingTime(t, now).Truncate(time.Second).String(),
				Urgent:    urgent,
				Doing:     t.Doing,
			})
		}
	}
	return snap
}
