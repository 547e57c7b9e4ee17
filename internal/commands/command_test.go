package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due 2d", TypeAdd},
		{"edit need 90m", TypeEdit},
		{"done", TypeDone},
		{"/doing", TypeDoing},
		{"delete", TypeDelete},
		{"undo", TypeUndo},
		{"show heatmap", TypeShow},
		{"sync calendar off", TypeSync},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddGrammar(t *testing.T) {
	cmd, err := Parse("add Write quarterly report due 1w need 3h priority high every monthly")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Content != "Write quarterly report" {
		t.Fatalf("unexpected content: %q", a.Content)
	}
	if a.Due != 7*24*time.Hour || a.Need != 3*time.Hour {
		t.Fatalf("unexpected spans: due=%s need=%s", a.Due, a.Need)
	}
	if a.Priority != model.PriorityHigh || a.Cycle != model.CycleMonthly {
		t.Fatalf("unexpected priority/cycle: %d/%d", a.Priority, a.Cycle)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"add due 2h",
		"add pay rent",
		"add pay rent due",
		"add pay rent due soon",
		"add pay rent due 2h priority urgent",
		"edit colour red",
		"edit due 0s",
		"done now",
		"show decade",
		"sync reminder maybe",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := Parse("  / "); err == nil {
		t.Fatal("expected empty input error")
	}
}

func TestParseSpan(t *testing.T) {
	cases := map[string]time.Duration{
		"45m":     45 * time.Minute,
		"1h30m":   90 * time.Minute,
		"3d":      72 * time.Hour,
		"2W":      14 * 24 * time.Hour,
		"15250w":  15250 * 7 * 24 * time.Hour,
		"106751d": 106751 * 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseSpan(in)
		if err != nil || got != want {
			t.Fatalf("ParseSpan(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	for _, bad := range []string{"d", "-1d", "-5m", "xw", "40000w", "106752d", "99999999999999999999d"} {
		if _, err := ParseSpan(bad); err == nil {
			t.Fatalf("ParseSpan(%q) should fail", bad)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/edit content write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Edit: func(a EditArgs) (Result, error) {
			called = true
			if a.Field != EditContent || a.Content != "write docs" {
				t.Fatalf("unexpected edit: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"show week", "undo"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{Done: func() (Result, error) { return Result{}, nil }})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
