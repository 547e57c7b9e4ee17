package lifecycle

import (
	"context"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

// Notifier owns local notifications. Ids follow model.ReminderID.
type Notifier interface {
	Schedule(id string, delay time.Duration, title, body string) error
	Cancel(id string)
}

type ReminderSync interface {
	AddReminder(ctx context.Context, t model.Task) error
	EditReminder(ctx context.Context, t model.Task) error
	RemoveReminder(ctx context.Context, t model.Task) error
}

type CalendarSync interface {
	AddEvent(ctx context.Context, t model.Task) error
	EditEvent(ctx context.Context, t model.Task) error
	RemoveEvent(ctx context.Context, t model.Task) error
}

type WidgetReloader interface {
	ReloadAllTimelines()
}

type noopNotifier struct{}

func (noopNotifier) Schedule(string, time.Duration, string, string) error { return nil }
func (noopNotifier) Cancel(string)                                         {}

type noopSync struct{}

func (noopSync) AddReminder(context.Context, model.Task) error    { return nil }
func (noopSync) EditReminder(context.Context, model.Task) error   { return nil }
func (noopSync) RemoveReminder(context.Context, model.Task) error { return nil }
func (noopSync) AddEvent(context.Context, model.Task) error       { return nil }
func (noopSync) EditEvent(context.Context, model.Task) error      { return nil }
func (noopSync) RemoveEvent(context.Context, model.Task) error    { return nil }

type noopWidget struct{}

func (noopWidget) ReloadAllTimelines() {}
