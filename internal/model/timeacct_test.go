package model

import (
	"math"
	"testing"
	"time"
)

func TestDecomposeRoundTrip(t *testing.T) {
	for _, secs := range []int64{0, 59, 3599, 86399, 86400, 2592000 + 1, 90061} {
		d := time.Duration(secs) * time.Second
		p := Decompose(d)
		if p.Hours < 0 || p.Hours >= 24 || p.Minutes < 0 || p.Minutes >= 60 || p.Seconds < 0 || p.Seconds >= 60 {
			t.Fatalf("Decompose(%d) out of range: %+v", secs, p)
		}
		if got := p.Duration(); got != d {
			t.Fatalf("round trip %d: got %s from %+v", secs, got, p)
		}
	}
}

func TestDecomposeComponents(t *testing.T) {
	got := Decompose(90061 * time.Second)
	want := Parts{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}
	if got != want {
		t.Fatalf("Decompose(90061s) = %+v, want %+v", got, want)
	}
	if !Decompose(-5 * time.Second).IsZero() {
		t.Fatal("expected negative duration to decompose to zero")
	}
}

func TestRemainingTime(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{EndDate: now.Add(5 * time.Hour), NeedTime: 2 * time.Hour, ActualFinishTime: 30 * time.Minute}
	if got := RemainingTime(task, now); got != 3*time.Hour+30*time.Minute {
		t.Fatalf("unexpected remaining time: %s", got)
	}

	if got := RemainingTime(task, now.Add(10*time.Hour)); got != 0 {
		t.Fatalf("expected remaining time floored at zero, got %s", got)
	}
}

func TestRemainingTimeAtDeadline(t *testing.T) {
	end := time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC)
	under := Task{EndDate: end, NeedTime: 2 * time.Hour, ActualFinishTime: time.Hour}
	if got := RemainingTime(under, end); got != 0 {
		t.Fatalf("expected 0 at deadline with estimate outstanding, got %s", got)
	}
	over := Task{EndDate: end, NeedTime: time.Hour, ActualFinishTime: 90 * time.Minute}
	if got := RemainingTime(over, end); got != 30*time.Minute {
		t.Fatalf("expected overrun to show at deadline, got %s", got)
	}
}

func TestProgressWidthSaturates(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{EndDate: now.Add(4 * time.Hour), NeedTime: time.Hour}
	if got := ProgressWidth(task, now, 200); math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected quarter width, got %f", got)
	}

	task.ActualFinishTime = 2 * time.Hour
	if got := ProgressWidth(task, now, 200); got != 200 {
		t.Fatalf("expected negative fraction to saturate, got %f", got)
	}

	task = Task{EndDate: now.Add(time.Hour), NeedTime: 3 * time.Hour}
	if got := ProgressWidth(task, now, 200); got != 200 {
		t.Fatalf("expected overflow to saturate, got %f", got)
	}

	task = Task{EndDate: now, NeedTime: time.Hour}
	if got := ProgressWidth(task, now, 200); got != 200 {
		t.Fatalf("expected zero span to saturate, got %f", got)
	}
}

func TestEmergencyLinePositionIsUnclamped(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{EmergencyDate: now.Add(time.Hour), EndDate: now.Add(4 * time.Hour)}
	if got := EmergencyLinePosition(task, now, 100); math.Abs(got-25) > 1e-9 {
		t.Fatalf("expected 25, got %f", got)
	}
	task.EmergencyDate = now.Add(-4 * time.Hour)
	if got := EmergencyLinePosition(task, now, 100); math.Abs(got+100) > 1e-9 {
		t.Fatalf("expected -100, got %f", got)
	}
}

func TestElapsedWhileDoing(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{AddDate: start.Add(-time.Hour), EndDate: start.Add(5 * time.Hour), NeedTime: time.Hour, LastTime: 10 * time.Minute}
	if err := task.Start(start); err != nil {
		t.Fatalf("start: %v", err)
	}
	if task.ActualFinishTime != 0 {
		t.Fatalf("expected session counter reset, got %s", task.ActualFinishTime)
	}
	task.Refresh(start.Add(20 * time.Minute))
	if task.ActualFinishTime != 30*time.Minute {
		t.Fatalf("expected 30m elapsed, got %s", task.ActualFinishTime)
	}
}
