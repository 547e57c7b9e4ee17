package model

import (
	"errors"
	"testing"
)

func TestReminderIDs(t *testing.T) {
	ids := ReminderIDs("abc")
	want := []string{"abc1", "abc2", "abc3", "abc4"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("id %d: expected %q, got %q", i, want[i], ids[i])
		}
	}
}

func TestParseReminderID(t *testing.T) {
	taskID, kind, err := ParseReminderID(ReminderID("task-42", ReminderOvertime))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if taskID != "task-42" || kind != ReminderOvertime {
		t.Fatalf("unexpected parse result: %q %s", taskID, kind)
	}

	for _, bad := range []string{"", "7", "task5", "taskx"} {
		if _, _, err := ParseReminderID(bad); !errors.Is(err, ErrInvalidReminderKind) {
			t.Fatalf("ParseReminderID(%q): expected ErrInvalidReminderKind, got %v", bad, err)
		}
	}
}
