package model

import (
	"math"
	"time"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

type Parts struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func Decompose(d time.Duration) Parts {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	days := total / secondsPerDay
	total -= days * secondsPerDay
	hours := total / secondsPerHour
	total -= hours * secondsPerHour
	minutes := total / secondsPerMinute
	return Parts{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(total % secondsPerMinute),
	}
}

func (p Parts) Duration() time.Duration {
	secs := int64(p.Days)*secondsPerDay + int64(p.Hours)*secondsPerHour + int64(p.Minutes)*secondsPerMinute + int64(p.Seconds)
	return time.Duration(secs) * time.Second
}

func (p Parts) IsZero() bool { return p == Parts{} }

func RemainingTime(t Task, now time.Time) time.Duration {
	left := t.EndDate.Sub(now) - t.NeedTime + t.ActualFinishTime
	if left < 0 {
		return 0
	}
	return left
}

// ProgressFraction may fall outside [0,1].
func ProgressFraction(t Task, now time.Time) float64 {
	return (t.NeedTime - t.ActualFinishTime).Seconds() / t.EndDate.Sub(now).Seconds()
}

func ProgressWidth(t Task, now time.Time, width float64) float64 {
	w := ProgressFraction(t, now) * width
	if math.IsNaN(w) || w < 0 || w > width {
		return width
	}
	return w
}

// EmergencyLinePosition is not clamped.
func EmergencyLinePosition(t Task, now time.Time, width float64) float64 {
	return t.EmergencyDate.Sub(now).Seconds() / t.EndDate.Sub(now).Seconds() * width
}

func (t Task) Elapsed(now time.Time) time.Duration {
	if !t.Doing || t.StartDoingDate.IsZero() {
		return t.ActualFinishTime
	}
	session := now.Sub(t.StartDoingDate)
	if session < 0 {
		session = 0
	}
	return t.LastTime + session
}

func (t *Task) Refresh(now time.Time) {
	if t.Doing {
		t.ActualFinishTime = t.Elapsed(now)
	}
	t.LeftTime = RemainingTime(*t, now)
}
