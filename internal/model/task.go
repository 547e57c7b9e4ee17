package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidState    = errors.New("model: invalid task state")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCycle    = errors.New("model: invalid repeat cycle")
	ErrDoingWhileDone  = errors.New("model: doing is only valid while task is not done")
)

const PlaceholderContent = "New Task"

type State string

const (
	StatePending State = "Pending"
	StateUrgent  State = "Urgent"
	StateDone    State = "Done"
)

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateUrgent, StateDone:
		return true
	default:
		return false
	}
}

// Priority codes follow the external reminder priority scale and are
// non-contiguous.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 5
	PriorityLow    Priority = 9
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "None"
	}
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "none":
		return PriorityNone, nil
	case "1", "high":
		return PriorityHigh, nil
	case "5", "medium":
		return PriorityMedium, nil
	case "9", "low":
		return PriorityLow, nil
	default:
		return PriorityNone, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

type Task struct {
	ID       string
	Content  string
	Priority Priority

	Cycle Cycle
	Times int

	AddDate        time.Time
	EmergencyDate  time.Time
	EndDate        time.Time
	DoneDate       time.Time
	StartDoingDate time.Time

	NeedTime         time.Duration
	InitialNeedTime  time.Duration
	ActualFinishTime time.Duration
	LastTime         time.Duration
	LeftTime         time.Duration

	// Estimate is the decomposed "remaining to meet estimate" snapshot. It is
	// refreshed on pause and is what the on-time score reads.
	Estimate Parts

	State State
	Doing bool

	Score int

	ExternalRef string
}

func (t Task) IsDone() bool { return t.State == StateDone }

func (t Task) IsUrgent() bool { return t.State == StateUrgent }

func (t *Task) SetDoing(on bool) error {
	if on && t.IsDone() {
		return ErrDoingWhileDone
	}
	t.Doing = on
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return errors.New("model: task content is required")
	}
	if !t.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, t.State)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, t.Priority)
	}
	if !t.Cycle.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidCycle, t.Cycle)
	}
	if t.AddDate.IsZero() || t.EndDate.IsZero() {
		return errors.New("model: task add_date and end_date are required")
	}
	if t.IsDone() && t.Doing {
		return ErrDoingWhileDone
	}
	if t.IsDone() && t.DoneDate.IsZero() {
		return errors.New("model: done_date is required when task state is Done")
	}
	return nil
}

type Draft struct {
	Content       string
	Priority      Priority
	Cycle         Cycle
	AddDate       time.Time
	EmergencyDate time.Time
	EndDate       time.Time
	NeedTime      time.Duration
}

// A zero emergency date defaults to twice the estimate before the deadline.
func NewTask(id string, d Draft, now time.Time) Task {
	content := strings.TrimSpace(d.Content)
	if content == "" {
		content = PlaceholderContent
	}
	add := d.AddDate
	if add.IsZero() {
		add = now
	}
	emergency := d.EmergencyDate
	if emergency.IsZero() {
		emergency = d.EndDate.Add(-2 * d.NeedTime)
	}
	t := Task{
		ID:              id,
		Content:         content,
		Priority:        d.Priority,
		Cycle:           d.Cycle,
		AddDate:         add,
		EmergencyDate:   emergency,
		EndDate:         d.EndDate,
		NeedTime:        d.NeedTime,
		InitialNeedTime: d.NeedTime,
		Estimate:        Decompose(d.NeedTime),
		State:           StatePending,
	}
	t.LeftTime = RemainingTime(t, now)
	return t
}

func CountUrgent(tasks []Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone() && !now.Before(t.EmergencyDate) {
			n++
		}
	}
	return n
}
