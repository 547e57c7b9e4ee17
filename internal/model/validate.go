package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmergencyOutOfRange     = errors.New("model: emergency time must leave room for the estimate before the deadline")
	ErrEndTimeInPast           = errors.New("model: end time is in the past")
	ErrNeedTimeExceedsDeadline = errors.New("model: need time does not fit before the deadline")
	ErrFutureTask              = errors.New("model: task has not started yet")
	ErrPurchaseRequired        = errors.New("model: repeating tasks require the full version")
)

type AlertCode string

const (
	AlertEmergencyTimeOutOfRange AlertCode = "emergencyTimeOutOfRange"
	AlertEndTimeInPast           AlertCode = "endTimeInPast"
	AlertNeedTimeExceedsDeadline AlertCode = "needTimeExceedsDeadline"
	AlertActionOnFutureTask      AlertCode = "actionOnFutureTask"
	AlertPurchaseRequired        AlertCode = "purchaseRequired"
)

// Reverted may list more fields than the alert is about.
type ValidationError struct {
	Code     AlertCode
	Err      error
	Reverted []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func alert(code AlertCode, err error) *ValidationError {
	return &ValidationError{Code: code, Err: err}
}

// CheckEdit reverts every offending field of draft and returns the first alert
// (emergency, end, need). An unchanged emergency date is never checked.
func CheckEdit(prev Task, draft *Task, now time.Time) error {
	var first *ValidationError
	var reverted []string
	record := func(code AlertCode, err error, field string) {
		if first == nil {
			first = alert(code, err)
		}
		reverted = append(reverted, field)
	}

	emergencyBad := !draft.EmergencyDate.Equal(prev.EmergencyDate) &&
		draft.EmergencyDate.After(draft.EndDate.Add(-draft.NeedTime))
	endBad := draft.EndDate.Before(now)
	needBad := draft.NeedTime > draft.EndDate.Sub(draft.AddDate)

	if emergencyBad {
		record(AlertEmergencyTimeOutOfRange, ErrEmergencyOutOfRange, "emergency_date")
		draft.EmergencyDate = prev.EmergencyDate
	}
	if endBad {
		record(AlertEndTimeInPast, ErrEndTimeInPast, "end_date")
		draft.EndDate = prev.EndDate
	}
	if needBad {
		record(AlertNeedTimeExceedsDeadline, ErrNeedTimeExceedsDeadline, "need_time")
		draft.NeedTime = prev.NeedTime
	}
	if first == nil {
		return nil
	}
	first.Reverted = reverted
	return first
}

func CheckNew(t Task, emergencySet bool, now time.Time) error {
	switch {
	case emergencySet && t.EmergencyDate.After(t.EndDate.Add(-t.NeedTime)):
		return alert(AlertEmergencyTimeOutOfRange, ErrEmergencyOutOfRange)
	case t.EndDate.Before(now):
		return alert(AlertEndTimeInPast, ErrEndTimeInPast)
	case t.NeedTime > t.EndDate.Sub(t.AddDate):
		return alert(AlertNeedTimeExceedsDeadline, ErrNeedTimeExceedsDeadline)
	}
	return nil
}

func CheckStarted(t Task, now time.Time) error {
	if t.AddDate.After(now) {
		return alert(AlertActionOnFutureTask, ErrFutureTask)
	}
	return nil
}

func CheckEntitlement(c Cycle, s UserSetting) error {
	if c != CycleNone && !s.Purchased {
		return alert(AlertPurchaseRequired, ErrPurchaseRequired)
	}
	return nil
}
