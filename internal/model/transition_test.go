package model

import (
	"testing"
	"time"
)

func TestStartPauseAccumulates(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := NewTask("t", Draft{AddDate: now.Add(-time.Hour), EndDate: now.Add(8 * time.Hour), NeedTime: 2 * time.Hour}, now)

	if err := task.Start(now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := task.Pause(now.Add(30 * time.Minute)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if task.Doing || task.LastTime != 30*time.Minute || task.ActualFinishTime != 30*time.Minute {
		t.Fatalf("unexpected first session: doing=%v last=%s actual=%s", task.Doing, task.LastTime, task.ActualFinishTime)
	}
	if task.Estimate != (Parts{Hours: 1, Minutes: 30}) {
		t.Fatalf("unexpected estimate snapshot: %+v", task.Estimate)
	}

	resume := now.Add(time.Hour)
	if err := task.Start(resume); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := task.Pause(resume.Add(2 * time.Hour)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if task.ActualFinishTime != 150*time.Minute {
		t.Fatalf("expected 2h30m accumulated, got %s", task.ActualFinishTime)
	}
	if !task.Estimate.IsZero() {
		t.Fatalf("expected empty estimate after overrun, got %+v", task.Estimate)
	}
}

func TestEvaluateEdges(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{State: StatePending, EmergencyDate: now}

	if entered, _ := task.Evaluate(now.Add(-time.Second)); entered {
		t.Fatal("did not expect urgency before emergency date")
	}
	if entered, _ := task.Evaluate(now); !entered || task.State != StateUrgent {
		t.Fatalf("expected entering urgent at emergency date, got %s", task.State)
	}
	if entered, left := task.Evaluate(now.Add(time.Hour)); entered || left {
		t.Fatal("expected no edge while staying urgent")
	}

	task.EmergencyDate = now.Add(24 * time.Hour)
	if _, left := task.Evaluate(now); !left || task.State != StatePending {
		t.Fatalf("expected leaving urgent after emergency moved, got %s", task.State)
	}

	task.MarkDone(now)
	if entered, left := task.Evaluate(now.Add(48 * time.Hour)); entered || left || task.State != StateDone {
		t.Fatalf("done tasks never change state, got %s", task.State)
	}
}

func TestMarkDoneAndReopen(t *testing.T) {
	base := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	task := Task{
		AddDate:          base,
		EndDate:          base.Add(4 * time.Hour),
		NeedTime:         7200 * time.Second,
		ActualFinishTime: 5400 * time.Second,
		Estimate:         Decompose(7200 * time.Second),
		State:            StatePending,
		Doing:            true,
	}
	task.MarkDone(base.Add(time.Hour))
	if task.State != StateDone || task.Doing || task.Score != 77 {
		t.Fatalf("unexpected done task: state=%s doing=%v score=%d", task.State, task.Doing, task.Score)
	}
	task.Reopen()
	if task.State != StatePending || task.Score != 77 {
		t.Fatalf("expected pending with score kept, got %s %d", task.State, task.Score)
	}
}
