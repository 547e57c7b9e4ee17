package notify

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type Request struct {
	ID    string
	Kind  model.ReminderKind
	Delay time.Duration
	Title string
	Body  string
}

func Plan(t model.Task, now time.Time) []Request {
	if t.IsDone() {
		return nil
	}
	remaining := model.RemainingTime(t, now)
	outstanding := t.NeedTime - t.ActualFinishTime
	if outstanding < 0 {
		outstanding = 0
	}

	var out []Request
	add := func(k model.ReminderKind, delay time.Duration) {
		if delay <= 0 {
			return
		}
		title, body := message(t, k)
		out = append(out, Request{ID: model.ReminderID(t.ID, k), Kind: k, Delay: delay, Title: title, Body: body})
	}

	add(model.ReminderApproaching, remaining)
	add(model.ReminderPassed, remaining+outstanding)
	add(model.ReminderUrgency, t.EmergencyDate.Sub(now))
	if t.Doing {
		add(model.ReminderOvertime, t.NeedTime-t.LastTime)
	}
	return out
}

func message(t model.Task, k model.ReminderKind) (string, string) {
	switch k {
	case model.ReminderApproaching:
		return "Deadline approaching", fmt.Sprintf("%q needs %s of work before its deadline", t.Content, formatDuration(t.NeedTime-t.ActualFinishTime))
	case model.ReminderPassed:
		return "Deadline passed", fmt.Sprintf("%q is past its deadline", t.Content)
	case model.ReminderUrgency:
		return "Time to start", fmt.Sprintf("%q has reached its start time", t.Content)
	case model.ReminderOvertime:
		return "Over estimate", fmt.Sprintf("%q has used up its %s estimate", t.Content, formatDuration(t.NeedTime))
	default:
		return "Reminder", t.Content
	}
}

func formatDuration(d time.Duration) string {
	p := model.Decompose(d)
	switch {
	case p.Days > 0:
		return fmt.Sprintf("%dd %dh", p.Days, p.Hours)
	case p.Hours > 0:
		return fmt.Sprintf("%dh %dm", p.Hours, p.Minutes)
	case p.Minutes > 0:
		return fmt.Sprintf("%dm", p.Minutes)
	default:
		return fmt.Sprintf("%ds", p.Seconds)
	}
}
