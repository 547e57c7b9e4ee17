package model

import "time"

// Start begins a doing session. The stored ActualFinishTime restarts at zero
// for the session; Elapsed/Refresh derive the running total from LastTime.
func (t *Task) Start(now time.Time) error {
	if err := CheckStarted(*t, now); err != nil {
		return err
	}
	if err := t.SetDoing(true); err != nil {
		return err
	}
	t.StartDoingDate = now
	t.ActualFinishTime = 0
	return nil
}

func (t *Task) Pause(now time.Time) error {
	if err := CheckStarted(*t, now); err != nil {
		return err
	}
	t.ActualFinishTime = t.Elapsed(now)
	t.Doing = false
	t.LastTime = t.ActualFinishTime
	if t.ActualFinishTime < t.NeedTime {
		t.Estimate = Decompose(t.NeedTime - t.ActualFinishTime)
	} else {
		t.Estimate = Parts{}
	}
	t.LeftTime = RemainingTime(*t, now)
	return nil
}

func (t *Task) Evaluate(now time.Time) (entered, left bool) {
	if t.IsDone() {
		return false, false
	}
	urgent := !now.Before(t.EmergencyDate)
	switch {
	case urgent && t.State != StateUrgent:
		t.State = StateUrgent
		return true, false
	case !urgent && t.State == StateUrgent:
		t.State = StatePending
		return false, true
	}
	return false, false
}

// MarkDone stamps completion and scores the task. Callers stop doing first.
func (t *Task) MarkDone(at time.Time) {
	t.Doing = false
	t.DoneDate = at
	t.Score = ComputeScore(*t)
	t.State = StateDone
}

func (t *Task) Reopen() {
	if !t.IsDone() {
		return
	}
	t.State = StatePending
}
