package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidReminderKind = errors.New("model: invalid reminder kind")

type ReminderKind int

const (
	ReminderApproaching ReminderKind = 1
	ReminderPassed      ReminderKind = 2
	ReminderUrgency     ReminderKind = 3
	ReminderOvertime    ReminderKind = 4
)

var ReminderKinds = []ReminderKind{ReminderApproaching, ReminderPassed, ReminderUrgency, ReminderOvertime}

func (k ReminderKind) IsValid() bool {
	return k >= ReminderApproaching && k <= ReminderOvertime
}

func (k ReminderKind) String() string {
	switch k {
	case ReminderApproaching:
		return "approaching"
	case ReminderPassed:
		return "passed"
	case ReminderUrgency:
		return "urgency"
	case ReminderOvertime:
		return "overtime"
	default:
		return "unknown"
	}
}

// ReminderID is the notification identifier "{taskID}{kind}".
func ReminderID(taskID string, k ReminderKind) string {
	return taskID + strconv.Itoa(int(k))
}

func ReminderIDs(taskID string) []string {
	out := make([]string, 0, len(ReminderKinds))
	for _, k := range ReminderKinds {
		out = append(out, ReminderID(taskID, k))
	}
	return out
}

func ParseReminderID(id string) (string, ReminderKind, error) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReminderKind, id)
	}
	k, err := strconv.Atoi(id[len(id)-1:])
	if err != nil || !ReminderKind(k).IsValid() {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReminderKind, id)
	}
	return id[:len(id)-1], ReminderKind(k), nil
}
