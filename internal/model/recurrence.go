package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotRecurring = errors.New("model: task does not repeat")

type Cycle int

const (
	CycleNone    Cycle = 0
	CycleDaily   Cycle = 1
	CycleWeekly  Cycle = 2
	CycleMonthly Cycle = 3
)

func (c Cycle) IsValid() bool {
	switch c {
	case CycleNone, CycleDaily, CycleWeekly, CycleMonthly:
		return true
	default:
		return false
	}
}

func (c Cycle) String() string {
	switch c {
	case CycleDaily:
		return "daily"
	case CycleWeekly:
		return "weekly"
	case CycleMonthly:
		return "monthly"
	default:
		return "none"
	}
}

func ParseCycle(raw string) (Cycle, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "none":
		return CycleNone, nil
	case "1", "daily", "day":
		return CycleDaily, nil
	case "2", "weekly", "week":
		return CycleWeekly, nil
	case "3", "monthly", "month":
		return CycleMonthly, nil
	default:
		return CycleNone, fmt.Errorf("%w: %q", ErrInvalidCycle, raw)
	}
}

// Monthly is a flat 30 days.
func (c Cycle) Step() time.Duration {
	switch c {
	case CycleDaily:
		return 24 * time.Hour
	case CycleWeekly:
		return 7 * 24 * time.Hour
	case CycleMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

func (c Cycle) anchor(at time.Time) time.Time {
	switch c {
	case CycleWeekly:
		return StartOfWeek(at)
	case CycleMonthly:
		return StartOfMonth(at)
	default:
		return StartOfDay(at)
	}
}

// NextOccurrence collapses a long dormant gap into a single successor.
func NextOccurrence(pred Task, id string, now time.Time) (Task, error) {
	if pred.Cycle == CycleNone {
		return Task{}, ErrNotRecurring
	}
	if !pred.Cycle.IsValid() {
		return Task{}, fmt.Errorf("%w: %d", ErrInvalidCycle, pred.Cycle)
	}
	loc := now.Location()
	step := pred.Cycle.Step()
	end := pred.EndDate
	emergency := pred.EmergencyDate
	var add time.Time
	for {
		end = end.Add(step)
		emergency = emergency.Add(step)
		add = pred.Cycle.anchor(emergency.In(loc))
		if !end.Before(now) {
			break
		}
	}

	next := Task{
		ID:              id,
		Content:         pred.Content,
		Priority:        pred.Priority,
		Cycle:           pred.Cycle,
		Times:           pred.Times + 1,
		AddDate:         add,
		EmergencyDate:   emergency,
		EndDate:         end,
		NeedTime:        pred.InitialNeedTime,
		InitialNeedTime: pred.InitialNeedTime,
		Estimate:        Decompose(pred.InitialNeedTime),
		State:           StatePending,
	}
	next.LeftTime = RemainingTime(next, now)
	return next, nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func DaysInMonth(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}
