package main

import (
	"testing"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

func TestAddDraftDefaultsUrgency(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	fb := &addBindings{content: "Write report", due: "4h", need: "1h", priority: model.PriorityHigh}
	d, emergencySet, err := fb.draft(now)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if emergencySet || !d.EmergencyDate.IsZero() {
		t.Fatalf("expected default urgency, got set=%t %s", emergencySet, d.EmergencyDate)
	}
	if !d.EndDate.Equal(now.Add(4*time.Hour)) || d.NeedTime != time.Hour || d.Priority != model.PriorityHigh {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestAddDraftExplicitUrgency(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	fb := &addBindings{due: "2d", need: "", urgent: "6h"}
	d, emergencySet, err := fb.draft(now)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if !emergencySet || !d.EmergencyDate.Equal(now.Add(42*time.Hour)) {
		t.Fatalf("expected urgency 6h before due, got %s", d.EmergencyDate)
	}
	if d.NeedTime != 0 {
		t.Fatalf("expected empty estimate, got %s", d.NeedTime)
	}
}

func TestAddFieldValidators(t *testing.T) {
	if err := positiveSpan("0s"); err == nil {
		t.Fatal("expected zero due span rejected")
	}
	if err := positiveSpan("soon"); err == nil {
		t.Fatal("expected malformed span rejected")
	}
	if err := optionalSpan(""); err != nil {
		t.Fatalf("expected empty optional span accepted: %v", err)
	}
	if _, _, err := (&addBindings{due: "1h", need: "-1h"}).draft(time.Now()); err == nil {
		t.Fatal("expected negative estimate rejected")
	}
}
