package model

import (
	"math"
	"time"
)

const (
	onTimeWeight   = 0.3
	durationWeight = 0.7
)

// A zero or negative span scores 0. The estimate is the decomposed snapshot,
// not NeedTime.
func OnTimeStartScore(t Task) float64 {
	span := t.EndDate.Sub(t.AddDate).Seconds()
	if span <= 0 {
		return 0
	}
	margin := t.EndDate.Sub(t.DoneDate).Seconds() - t.Estimate.Duration().Seconds()
	return clamp01(margin / span)
}

func DurationScore(t Task) float64 {
	if t.ActualFinishTime <= t.NeedTime {
		return 100
	}
	if t.NeedTime <= 0 {
		return 0
	}
	ratio := (t.ActualFinishTime - t.NeedTime).Seconds() / t.NeedTime.Seconds()
	if ratio >= 1 {
		return 0
	}
	return 100 - ratio*100
}

// ComputeScore truncates each weighted component separately before summing.
func ComputeScore(t Task) int {
	onTime := int(math.Floor(OnTimeStartScore(t) * 100 * onTimeWeight))
	duration := int(math.Floor(DurationScore(t) * durationWeight))
	return onTime + duration
}

func WeeklyScore(tasks []Task, now time.Time) int {
	start := StartOfWeek(now)
	end := start.AddDate(0, 0, 7)
	sum, n := 0, 0
	for _, t := range tasks {
		if !t.IsDone() || t.DoneDate.Before(start) || !t.DoneDate.Before(end) {
			continue
		}
		sum += t.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
